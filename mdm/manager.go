// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mdm implements the storage of material states at integration points: the states at
// the beginning and end of the time step, the tangent operator blocks and the workspaces used
// to integrate the behaviour
package mdm

import (
	"sync"

	"github.com/chleh/MFrontGenericInterfaceSupport/bhv"
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// DataManagerInitializer holds external memory to be used by a DataManager.
// Nil slices are allocated by the DataManager (K and SpeedOfSound lazily)
type DataManagerInitializer struct {
	S0           StateManagerInitializer // state at the beginning of the time step
	S1           StateManagerInitializer // state at the end of the time step
	K            []float64               // [n * KStride] tangent operator blocks
	SpeedOfSound []float64               // [n] speed of sound
}

// DataManager holds the states at the beginning (S0) and at the end (S1) of the time step of
// all integration points, the tangent operator blocks and the integration workspaces
type DataManager struct {

	// states
	S0 *StateManager // state at the beginning of the time step
	S1 *StateManager // state at the end of the time step

	// constants
	b       *bhv.Behaviour // behaviour
	n       int            // number of integration points
	kStride int            // number of tangent operator components per point
	kBlocks [][2]int       // [nblocks] rows and columns of each tangent block
	nmps    int            // number of material properties components
	nesv    int            // number of external state variables components

	// lazily allocated arrays
	k            Array      // [n*kStride] tangent operator blocks
	speedOfSound Array      // [n] speed of sound
	amu          sync.Mutex // guards the allocation of arrays in thread safe mode

	// workspaces
	threadSafe bool                          // guard lazy allocations and use one workspace per worker
	iwk        *IntegrationWorkspace         // workspace in non thread safe mode
	iwks       map[int]*IntegrationWorkspace // worker => workspace in thread safe mode
	wmu        sync.Mutex                    // guards iwks in thread safe mode
}

// NewDataManager returns a new DataManager with n points; all memory is owned by the manager
func NewDataManager(b *bhv.Behaviour, n int) (o *DataManager, err error) {
	return NewDataManagerWith(b, n, DataManagerInitializer{})
}

// NewDataManagerWith returns a new DataManager with n points using the external memory given in i
func NewDataManagerWith(b *bhv.Behaviour, n int, i DataManagerInitializer) (o *DataManager, err error) {

	// constants
	if b == nil {
		return nil, chk.Err("NewDataManager: behaviour is nil")
	}
	o = &DataManager{b: b, n: n}
	if o.kStride, err = b.TangentOperatorArraySize(); err != nil {
		return nil, chk.Err("NewDataManager: %v", err)
	}
	for _, blk := range b.TangentBlocks() {
		f, _ := bhv.GetVariable(b.ThermodynamicForces, blk.Force) // checked by TangentOperatorArraySize
		g, _ := bhv.GetVariable(b.Gradients, blk.Gradient)
		nf, _ := bhv.VariableSize(f, b.Hypothesis)
		ng, _ := bhv.VariableSize(g, b.Hypothesis)
		o.kBlocks = append(o.kBlocks, [2]int{nf, ng})
	}
	if o.nmps, err = b.MpsSize(); err != nil {
		return nil, chk.Err("NewDataManager: %v", err)
	}
	if o.nesv, err = b.EsvsSize(); err != nil {
		return nil, chk.Err("NewDataManager: %v", err)
	}

	// check external memory first: no partial binding
	if i.K != nil && len(i.K) != n*o.kStride {
		return nil, chk.Err("NewDataManager: the external memory for the tangent operator blocks has not been allocated properly: len=%d != %d",
			len(i.K), n*o.kStride)
	}
	if i.SpeedOfSound != nil && len(i.SpeedOfSound) != n {
		return nil, chk.Err("NewDataManager: the external memory for the speed of sound has not been allocated properly: len=%d != %d",
			len(i.SpeedOfSound), n)
	}

	// states
	if o.S0, err = NewStateManagerWith(b, n, i.S0); err != nil {
		return nil, chk.Err("NewDataManager: state at the beginning of the time step:\n%v", err)
	}
	if o.S1, err = NewStateManagerWith(b, n, i.S1); err != nil {
		return nil, chk.Err("NewDataManager: state at the end of the time step:\n%v", err)
	}

	// external arrays
	if i.K != nil {
		if err = o.UseExternalArrayOfTangentOperatorBlocks(i.K); err != nil {
			return nil, err
		}
	}
	if i.SpeedOfSound != nil {
		if err = o.UseExternalArrayOfSpeedOfSounds(i.SpeedOfSound); err != nil {
			return nil, err
		}
	}
	return
}

// Behaviour returns the behaviour
func (o *DataManager) Behaviour() *bhv.Behaviour { return o.b }

// N returns the number of integration points
func (o *DataManager) N() int { return o.n }

// KStride returns the number of tangent operator components per point
func (o *DataManager) KStride() int { return o.kStride }

// thread safety //////////////////////////////////////////////////////////////////////////////////

// SetThreadSafe sets whether lazy allocations are guarded and workspaces are given per worker.
//  Note: must be called before any concurrent use
func (o *DataManager) SetThreadSafe(threadSafe bool) {
	o.threadSafe = threadSafe
}

// IsThreadSafe tells whether the manager is in thread safe mode
func (o *DataManager) IsThreadSafe() bool { return o.threadSafe }

// allocate allocates a lazily with size values; with a lock in thread safe mode
func (o *DataManager) allocate(a *Array, size int) {
	if o.threadSafe {
		o.amu.Lock()
		defer o.amu.Unlock()
	}
	a.Allocate(size)
}

// tangent operator blocks ////////////////////////////////////////////////////////////////////////

// K returns the tangent operator blocks [n * KStride]; nil if not allocated
func (o *DataManager) K() []float64 { return o.k.Data() }

// AllocateArrayOfTangentOperatorBlocks allocates the tangent operator blocks, if not allocated yet
func (o *DataManager) AllocateArrayOfTangentOperatorBlocks() {
	o.allocate(&o.k, o.n*o.kStride)
}

// ReleaseArrayOfTangentOperatorBlocks releases the tangent operator blocks
func (o *DataManager) ReleaseArrayOfTangentOperatorBlocks() {
	o.k.Release()
}

// UseExternalArrayOfTangentOperatorBlocks uses external memory for the tangent operator blocks.
// On failure, the current binding is left unchanged
func (o *DataManager) UseExternalArrayOfTangentOperatorBlocks(k []float64) (err error) {
	err = o.k.UseExternal(k, o.n*o.kStride)
	if err != nil {
		return chk.Err("UseExternalArrayOfTangentOperatorBlocks: %v", err)
	}
	return
}

// KAt returns the tangent operator blocks of point i. No bounds check is made
func (o *DataManager) KAt(i int) []float64 { return o.k.Slice(i, o.kStride) }

// TangentOperatorBlocks returns matrix views of the tangent blocks of point i.
// The matrices alias the tangent operator array
func (o *DataManager) TangentOperatorBlocks(i int) (blocks []*mat.Dense, err error) {
	if !o.k.IsBound() {
		return nil, chk.Err("TangentOperatorBlocks: the tangent operator blocks are not allocated")
	}
	if i < 0 || i >= o.n {
		return nil, chk.Err("TangentOperatorBlocks: invalid point index %d; n=%d", i, o.n)
	}
	k := o.KAt(i)
	pos := 0
	for _, rc := range o.kBlocks {
		size := rc[0] * rc[1]
		blocks = append(blocks, mat.NewDense(rc[0], rc[1], k[pos:pos+size]))
		pos += size
	}
	return
}

// speed of sound /////////////////////////////////////////////////////////////////////////////////

// SpeedOfSound returns the speed of sound [n]; nil if not allocated
func (o *DataManager) SpeedOfSound() []float64 { return o.speedOfSound.Data() }

// AllocateArrayOfSpeedOfSounds allocates the speed of sound array, if not allocated yet
func (o *DataManager) AllocateArrayOfSpeedOfSounds() {
	o.allocate(&o.speedOfSound, o.n)
}

// ReleaseArrayOfSpeedOfSounds releases the speed of sound array
func (o *DataManager) ReleaseArrayOfSpeedOfSounds() {
	o.speedOfSound.Release()
}

// UseExternalArrayOfSpeedOfSounds uses external memory for the speed of sound.
// On failure, the current binding is left unchanged
func (o *DataManager) UseExternalArrayOfSpeedOfSounds(v []float64) (err error) {
	err = o.speedOfSound.UseExternal(v, o.n)
	if err != nil {
		return chk.Err("UseExternalArrayOfSpeedOfSounds: %v", err)
	}
	return
}

// workspaces /////////////////////////////////////////////////////////////////////////////////////

// GetIntegrationWorkspace returns the workspace of the given worker.
// In thread safe mode, each worker gets its own workspace, created on first use.
// Otherwise, the same workspace is returned to all callers
func (o *DataManager) GetIntegrationWorkspace(worker int) *IntegrationWorkspace {
	if o.threadSafe {
		o.wmu.Lock()
		defer o.wmu.Unlock()
		if o.iwks == nil {
			o.iwks = make(map[int]*IntegrationWorkspace)
		}
		wk, ok := o.iwks[worker]
		if !ok {
			wk = newIntegrationWorkspace(o.nmps, o.nesv)
			o.iwks[worker] = wk
		}
		return wk
	}
	if o.iwk == nil {
		o.iwk = newIntegrationWorkspace(o.nmps, o.nesv)
	}
	return o.iwk
}

// NumberOfWorkspaces returns the number of workspaces created so far
func (o *DataManager) NumberOfWorkspaces() (n int) {
	o.wmu.Lock()
	defer o.wmu.Unlock()
	n = len(o.iwks)
	if o.iwk != nil {
		n++
	}
	return
}

// ReleaseIntegrationWorkspaces drops all workspaces
func (o *DataManager) ReleaseIntegrationWorkspaces() {
	o.wmu.Lock()
	defer o.wmu.Unlock()
	o.iwk = nil
	o.iwks = nil
}

// Clean releases all arrays and workspaces owned by the manager; external memory is untouched
func (o *DataManager) Clean() {
	o.ReleaseArrayOfTangentOperatorBlocks()
	o.ReleaseArrayOfSpeedOfSounds()
	o.ReleaseIntegrationWorkspaces()
}

// update and revert //////////////////////////////////////////////////////////////////////////////

// Update prepares the next time step: the tangent operator blocks are zeroed and the state at
// the end of the time step is copied into the state at the beginning of the time step
func Update(m *DataManager) (err error) {
	m.k.Fill(0)
	err = UpdateValues(m.S0, m.S1)
	if err != nil {
		return chk.Err("Update failed:\n%v", err)
	}
	return
}

// Revert discards the current time step: the tangent operator blocks are zeroed and the state at
// the beginning of the time step is copied into the state at the end of the time step
func Revert(m *DataManager) (err error) {
	m.k.Fill(0)
	err = UpdateValues(m.S1, m.S0)
	if err != nil {
		return chk.Err("Revert failed:\n%v", err)
	}
	return
}
