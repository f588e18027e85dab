package interaction

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"immoxperts/server/internal/models"
	"immoxperts/server/internal/search"
)

// State is one of the three mutually exclusive interaction states.
type State int

const (
	StateIdle State = iota
	StateHoverPreview
	StatePinnedDetail
)

// String returns the string representation of a State.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateHoverPreview:
		return "hover_preview"
	case StatePinnedDetail:
		return "pinned_detail"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the state as its string name.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Surface is the UI element a pinned detail is presented in.
type Surface int

const (
	SurfacePopup Surface = iota
	SurfaceBottomSheet
)

// String returns the string representation of a Surface.
func (s Surface) String() string {
	switch s {
	case SurfacePopup:
		return "popup"
	case SurfaceBottomSheet:
		return "bottom_sheet"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the surface as its string name.
func (s Surface) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Tap classification thresholds: anything longer or farther is a drag
// or scroll, never a selection.
const (
	TapMaxMovementPx = 10.0
	TapMaxDuration   = 300 * time.Millisecond

	defaultHoverGrace = 100 * time.Millisecond
)

// View is a snapshot of what the UI should present.
type View struct {
	State     State            `json:"state"`
	Surface   Surface          `json:"surface"`
	Feature   *models.Feature  `json:"feature,omitempty"`
	Addresses []models.Address `json:"addresses,omitempty"`
	Index     int              `json:"index"`
}

// Machine owns the hover/click/touch interaction state of one map
// session. Touch devices route every interaction to PinnedDetail:
// hover has no meaning without a pointer, and a transient popup would
// fight the double-tap zoom gesture.
type Machine struct {
	logger *logrus.Logger
	device models.DeviceClass
	grace  time.Duration
	halo   *HaloSource

	mu          sync.Mutex
	state       State
	feature     *models.Feature
	addresses   []models.Address
	index       int
	expected    string
	overPopup   bool
	overFeature bool
	graceTimer  *time.Timer
	closed      bool
}

// NewMachine creates an interaction machine for a session of the given
// device class.
func NewMachine(device models.DeviceClass, halo *HaloSource, logger *logrus.Logger) *Machine {
	if logger == nil {
		logger = logrus.New()
	}
	if halo == nil {
		halo = NewHaloSource()
	}
	return &Machine{
		logger: logger,
		device: device,
		grace:  defaultHoverGrace,
		halo:   halo,
	}
}

// Halo exposes the emphasis source tied to this machine.
func (m *Machine) Halo() *HaloSource {
	return m.halo
}

// SetExpectedAddress supplies the address string a search selection is
// targeting; matching addresses sort first when a feature opens.
func (m *Machine) SetExpectedAddress(address string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expected = search.Normalize(address)
}

// PointerEnter handles the pointer entering a feature. Desktop only:
// it opens a transient preview without touching any pinned selection.
func (m *Machine) PointerEnter(feature models.Feature) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.overFeature = true
	if m.device == models.DeviceTouch || m.state == StatePinnedDetail {
		return
	}

	m.stopGraceTimer()
	m.state = StateHoverPreview
	m.present(feature)
}

// PointerLeave handles the pointer leaving the feature. The preview
// stays open while the pointer is over the popup itself; a short grace
// timer avoids flicker at the boundary.
func (m *Machine) PointerLeave() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.overFeature = false
	if m.state != StateHoverPreview {
		return
	}
	m.startGraceTimer()
}

// EnterPopup records that the pointer reached the popup element,
// keeping the preview open.
func (m *Machine) EnterPopup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.overPopup = true
	m.stopGraceTimer()
}

// LeavePopup records that the pointer left the popup element.
func (m *Machine) LeavePopup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.overPopup = false
	if m.state == StateHoverPreview {
		m.startGraceTimer()
	}
}

// Click handles an explicit desktop click: on a feature it pins the
// detail, on empty map area it dismisses a pinned detail.
func (m *Machine) Click(feature *models.Feature) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if feature == nil {
		if m.state == StatePinnedDetail {
			m.toIdle()
		}
		return
	}

	m.stopGraceTimer()
	m.state = StatePinnedDetail
	m.present(*feature)
}

// Touch classifies a touch sequence and pins the detail when it
// qualifies as a tap. Drags and scrolls are ignored.
func (m *Machine) Touch(feature *models.Feature, movementPx float64, duration time.Duration) {
	if movementPx >= TapMaxMovementPx || duration >= TapMaxDuration {
		return
	}
	m.Click(feature)
}

// Next advances the current index, wrapping past the last record.
func (m *Machine) Next() {
	m.shift(1)
}

// Prev moves the current index back, wrapping from 0 to the last
// record.
func (m *Machine) Prev() {
	m.shift(-1)
}

func (m *Machine) shift(delta int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateIdle {
		return
	}
	n := m.recordCount()
	if n == 0 {
		return
	}
	m.index = ((m.index+delta)%n + n) % n
}

// Dismiss is the explicit close action of the popup or bottom sheet.
func (m *Machine) Dismiss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.toIdle()
}

// View returns a snapshot for rendering.
func (m *Machine) View() View {
	m.mu.Lock()
	defer m.mu.Unlock()

	surface := SurfacePopup
	if m.device == models.DeviceTouch {
		surface = SurfaceBottomSheet
	}

	view := View{
		State:   m.state,
		Surface: surface,
		Feature: m.feature,
		Index:   m.index,
	}
	view.Addresses = append(view.Addresses, m.addresses...)
	return view
}

// Close stops the grace timer and resets the machine.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.toIdle()
	m.closed = true
}

// present installs a feature into the current state. Re-presenting the
// same feature keeps the index, so next/prev navigation re-renders in
// place without re-triggering the open transition.
func (m *Machine) present(feature models.Feature) {
	if m.feature == nil || m.feature.ID != feature.ID {
		m.index = 0
	}
	m.feature = &feature
	m.addresses = orderAddresses(feature.Addresses, m.expected)
	m.halo.Set(feature)
}

// recordCount is the length of the navigable record list: the
// mutations of the first address in display order, which is the one
// the detail surface presents.
func (m *Machine) recordCount() int {
	if len(m.addresses) == 0 {
		return 0
	}
	return len(m.addresses[0].Mutations)
}

func (m *Machine) toIdle() {
	m.stopGraceTimer()
	m.state = StateIdle
	m.feature = nil
	m.addresses = nil
	m.index = 0
	m.overPopup = false
	m.halo.Clear()
}

// startGraceTimer schedules the hover collapse. The caller must hold
// the lock.
func (m *Machine) startGraceTimer() {
	m.stopGraceTimer()
	m.graceTimer = time.AfterFunc(m.grace, m.collapseHover)
}

func (m *Machine) stopGraceTimer() {
	if m.graceTimer != nil {
		m.graceTimer.Stop()
		m.graceTimer = nil
	}
}

func (m *Machine) collapseHover() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed || m.state != StateHoverPreview {
		return
	}
	if m.overPopup || m.overFeature {
		return
	}
	m.toIdle()
}

// orderAddresses puts addresses matching the expected string first,
// preserving source order otherwise.
func orderAddresses(addresses []models.Address, expected string) []models.Address {
	out := make([]models.Address, len(addresses))
	copy(out, addresses)
	if expected == "" {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		mi := search.Normalize(out[i].AdresseComplete) == expected
		mj := search.Normalize(out[j].AdresseComplete) == expected
		return mi && !mj
	})
	return out
}
