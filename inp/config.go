// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package inp reads a propagation-engine configuration from a JSON input
// file: a flat tagged struct, defaults filled before json.Unmarshal,
// gosl/chk.Panic on malformed input, adapted to the options table of §6.
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
)

// MeshData lays out the initial grid parameters of §4.1.
type MeshData struct {
	Lx        float64 `json:"lx"`
	Ly        float64 `json:"ly"`
	Nx        int     `json:"nx"`
	Ny        int     `json:"ny"`
	Symmetric bool    `json:"symmetric"`
}

// SolverMode selects the mutually exclusive solver branch named in §6.
type SolverMode string

const (
	VolumeControl     SolverMode = "volumeControl"
	ViscousInjection  SolverMode = "viscousInjection"
	DryCrackMechLoad  SolverMode = "dryCrack_mechLoading"
)

// FrontAdvancing selects the front-loop variant.
type FrontAdvancing string

const (
	Explicit     FrontAdvancing = "explicit"
	SemiImplicit FrontAdvancing = "semi-implicit"
	Implicit     FrontAdvancing = "implicit"
)

// EHDScheme selects the outer EHD iteration of §4.8.6.
type EHDScheme string

const (
	Picard           EHDScheme = "Picard"
	ImplicitAnderson EHDScheme = "implicit_Anderson"
	ImplicitNewton   EHDScheme = "implicit_Newton"
)

// ProjMethod selects the front-reconstruction variant of §4.5.
type ProjMethod string

const (
	ILSA              ProjMethod = "ILSA"
	LSContinuousFront ProjMethod = "LS_continousfront"
)

// Config is the flat, JSON-tagged configuration recognized by the
// propagation engine, mirroring every key of the §6 options table.
type Config struct {
	Mesh MeshData `json:"mesh"`

	FinalTime     float64 `json:"finalTime"`
	TimeStepLimit float64 `json:"timeStepLimit"`

	// TmStpPrefactor names a function in Functions (scalar constant or
	// piecewise schedule), evaluated at the current simulation time.
	TmStpPrefactor string `json:"tmStpPrefactor"`

	Eprime float64 `json:"eprime"` // plane-strain modulus, E/(1-nu^2)

	MaxSolverItrs int     `json:"maxSolverItrs"`
	TolEHD        float64 `json:"tolEHD"`

	MaxFrontItr   int     `json:"maxFrontItr"`
	TolFractFront float64 `json:"tolFractFront"`

	MaxToughnessItr int     `json:"maxToughnessItr"`
	TolToughness    float64 `json:"tolToughness"`

	MaxReattempts   int     `json:"maxReattempts"`
	ReAttemptFactor float64 `json:"reAttemptFactor"`

	SolverMode SolverMode `json:"solverMode"`

	FrontAdvancing FrontAdvancing `json:"frontAdvancing"`
	Gravity        bool           `json:"gravity"`
	MinWidth       float64        `json:"minWidth"` // active-width-constraint clamp target Wc (§4.8.4); cells solved below it are clamped and re-solved
	Symmetric      bool           `json:"symmetric"`
	TipAsymptote   string         `json:"tipAsymptote"`
	ProjMethod     ProjMethod     `json:"projMethod"`
	ElastohydrSolver EHDScheme    `json:"elastohydrSolver"`
	SaveRegime     bool           `json:"saveRegime"`

	SetMeshExtensionDirection string  `json:"set_mesh_extension_direction"`
	MeshExtensionFactor       float64 `json:"meshExtensionFactor"`

	Injection InjectionData `json:"injection"`
	Fluid     FluidData     `json:"fluid"`
	Material  MaterialData  `json:"material"`
	Functions FuncsData     `json:"functions"`

	// Restart names a persist.Snapshot file to resume from; when empty the
	// CLI seeds a radial initial condition of InitRadius instead, matching
	// the "initial radial front at r=..." convention of the validation
	// scenarios (§8). Initial-condition construction proper is otherwise
	// left to the host, per §1 Non-goals.
	Restart     string  `json:"restart"`
	InitRadius  float64 `json:"initRadius"`

	Key    string `json:"-"`
	DirOut string `json:"dirout"`
}

// SetDefault fills the fields every simulation needs a sane value for even
// when the input file omits them.
func (c *Config) SetDefault() {
	c.MaxSolverItrs = 100
	c.TolEHD = 1e-6
	c.MaxFrontItr = 25
	c.TolFractFront = 1e-3
	c.MaxToughnessItr = 20
	c.TolToughness = 1e-3
	c.MaxReattempts = 10
	c.ReAttemptFactor = 0.7
	c.SolverMode = VolumeControl
	c.FrontAdvancing = Implicit
	c.TipAsymptote = "U"
	c.ProjMethod = ILSA
	c.ElastohydrSolver = Picard
	c.MeshExtensionFactor = 2
	c.TimeStepLimit = 1e300
}

// ReadConfig reads a .json configuration file into a Config, filling
// defaults first so omitted keys keep the engine's built-in policy.
func ReadConfig(path string) *Config {
	var c Config
	c.SetDefault()

	b, err := io.ReadFile(path)
	if err != nil {
		chk.Panic("ReadConfig: cannot read configuration file %q", path)
	}
	if err := json.Unmarshal(b, &c); err != nil {
		chk.Panic("ReadConfig: cannot unmarshal configuration file %q: %v", path, err)
	}

	fn := filepath.Base(path)
	c.Key = io.FnKey(fn)
	if c.DirOut == "" {
		c.DirOut = "/tmp/gofrac/" + c.Key
	}
	if err := os.MkdirAll(c.DirOut, 0777); err != nil {
		chk.Panic("ReadConfig: cannot create output directory %q: %v", c.DirOut, err)
	}

	return &c
}

// Prefactor resolves the TmStpPrefactor schedule, or nil when unset
// (stepper.Config treats a nil Prefactor as the constant 1).
func (c *Config) Prefactor() fun.TimeSpace {
	if c.TmStpPrefactor == "" {
		return nil
	}
	f, err := c.Functions.Get(c.TmStpPrefactor)
	if err != nil {
		chk.Panic("Prefactor: %v", err)
	}
	return f
}
