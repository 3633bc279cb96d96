// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
)

// Schema returns the OpenAPI schema of the structured [Report].
func Schema() (*openapi3.SchemaRef, error) {
	return openapi3gen.NewSchemaRefForValue(Report{}, nil)
}
