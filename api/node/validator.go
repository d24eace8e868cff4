// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package node

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

func newRequestValidator() *validator.Validate {
	return validator.New()
}

// check validates the request and maps any validation failure to the
// matching API error.
func (c *Controller) check(request interface{}, missing error) error {

	err := c.validate.Struct(request)
	if err == nil {
		return nil
	}

	// InvalidValidationError is returned by the validation library in cases of invalid usage,
	// more precisely, passing a non-struct to `validate.Struct()` method.
	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return err
	}

	return missing
}
