// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import "testing"

func TestFuncsDataGetZeroShortcuts(t *testing.T) {
	var fs FuncsData
	for _, name := range []string{"zero", "none", ""} {
		f, err := fs.Get(name)
		if err != nil {
			t.Fatalf("Get(%q) error: %v", name, err)
		}
		if got := f.F(1, []float64{2}); got != 0 {
			t.Fatalf("Get(%q).F = %v, want 0", name, got)
		}
	}
}

func TestFuncsDataGetMissingNameErrors(t *testing.T) {
	var fs FuncsData
	if _, err := fs.Get("doesNotExist"); err == nil {
		t.Fatal("Get on an undefined name did not return an error")
	}
}

func TestFuncsDataStringEmpty(t *testing.T) {
	var fs FuncsData
	if got := fs.String(); got != "  \"functions\" : []" {
		t.Fatalf("String() = %q", got)
	}
}
