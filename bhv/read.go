// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bhv

import (
	"encoding/json"
	"path/filepath"

	"github.com/chleh/MFrontGenericInterfaceSupport/hyp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gopkg.in/yaml.v3"
)

// ReadBehaviour reads a behaviour description from a .json, .yaml or .yml file
func ReadBehaviour(dir, fn string) (b *Behaviour, err error) {

	// read file
	buf, err := io.ReadFile(filepath.Join(dir, fn))
	if err != nil {
		return nil, chk.Err("ReadBehaviour: cannot read file %q:\n%v", fn, err)
	}

	// decode
	b = new(Behaviour)
	var given struct {
		Hypothesis *hyp.Hypothesis `json:"hypothesis" yaml:"hypothesis"`
	}
	switch filepath.Ext(fn) {
	case ".json":
		if err = json.Unmarshal(buf, &given); err == nil {
			err = json.Unmarshal(buf, b)
		}
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(buf, &given); err == nil {
			err = yaml.Unmarshal(buf, b)
		}
	default:
		return nil, chk.Err("ReadBehaviour: extension of file %q is not supported; options are .json, .yaml and .yml", fn)
	}
	if err != nil {
		return nil, chk.Err("ReadBehaviour: cannot decode file %q:\n%v", fn, err)
	}
	if given.Hypothesis == nil {
		return nil, chk.Err("ReadBehaviour: modelling hypothesis must be given in file %q", fn)
	}

	// check
	err = b.Validate()
	if err != nil {
		return nil, err
	}
	return
}
