// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE validation utilities.
//
// The package consolidates the 3-step CUE flow used for the user
// configuration file (CUE) and the local store document (JSON):
//
//  1. Compile the embedded schema
//  2. Parse user data (CUE or strict JSON) and unify with the schema
//  3. Validate, then decode or walk the unified value
//
// # Usage
//
//	//go:embed document_schema.cue
//	var schema []byte
//
//	value, err := cueutil.Validate(schema, data, "#Document",
//	    cueutil.WithFormat(cueutil.FormatJSON),
//	    cueutil.WithFilename(".jlm/data.json"),
//	)
//	if err != nil {
//	    return nil, err // Error includes the JSON path of the offending field
//	}
package cueutil
