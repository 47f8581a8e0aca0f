// SPDX-License-Identifier: MPL-2.0

// Package cueutil holds the CUE plumbing shared by the module loader and the
// configuration loader.
//
// Both follow the same flow:
//
//  1. Compile the embedded schema and look up its root definition
//  2. Compile the user document and unify it with that definition
//  3. Validate and decode into a Go value
//
// # Usage
//
//	//go:embed module_schema.cue
//	var moduleSchema string
//
//	result, err := cueutil.ParseAndDecodeString[Module](
//	    moduleSchema,
//	    source,
//	    "#Module",
//	    cueutil.WithFilename("vm.cue"),
//	)
//	if err != nil {
//	    return nil, err // already carries the file name and CUE path
//	}
//	return result.Value, nil
package cueutil
