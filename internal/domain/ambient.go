package domain

// AmbientController is the inactivity watchdog. After a fixed quiet window
// while playing it flips the interface into a reduced ambient display; any
// qualifying interaction resets the window. Pure presentation state, nothing
// is persisted.
type AmbientController struct {
	enabled        bool
	timeoutSeconds int
	remaining      int
	armed          bool
	active         bool
}

// NewAmbientController creates the controller. A timeout <= 0 falls back to
// the 10 second default.
func NewAmbientController(enabled bool, timeoutSeconds int) *AmbientController {
	if timeoutSeconds <= 0 {
		timeoutSeconds = 10
	}
	return &AmbientController{enabled: enabled, timeoutSeconds: timeoutSeconds}
}

// Enable turns the feature on.
func (a *AmbientController) Enable() { a.enabled = true }

// Disable turns the feature off and tears down any armed timer.
func (a *AmbientController) Disable() {
	a.enabled = false
	a.armed = false
	a.active = false
}

// Arm starts the quiet window. Only effective while the feature is enabled
// and ambient mode is not already active; callers arm it on entering Playing.
func (a *AmbientController) Arm() {
	if !a.enabled || a.active {
		return
	}
	a.armed = true
	a.remaining = a.timeoutSeconds
}

// Disarm tears the timer down. Called whenever playback leaves Playing.
func (a *AmbientController) Disarm() {
	a.armed = false
}

// Deactivate leaves ambient mode without re-arming, e.g. when playback
// stops.
func (a *AmbientController) Deactivate() {
	a.active = false
}

// Reset restarts the quiet window on a qualifying interaction: gesture
// starts, background taps, successful seeks.
func (a *AmbientController) Reset() {
	if !a.armed {
		return
	}
	a.remaining = a.timeoutSeconds
}

// Tick advances the armed timer by one second; at zero, ambient mode
// activates and the timer tears itself down.
func (a *AmbientController) Tick() {
	if !a.armed {
		return
	}
	a.remaining--
	if a.remaining <= 0 {
		a.active = true
		a.armed = false
	}
}

// Tap handles a background tap. While ambient, it exits ambient mode and
// re-arms the window; otherwise it just counts as an interaction. Returns
// true when the tap exited ambient mode.
func (a *AmbientController) Tap() bool {
	if a.active {
		a.active = false
		a.Arm()
		return true
	}
	a.Reset()
	return false
}

// Active reports whether ambient mode is on.
func (a *AmbientController) Active() bool { return a.active }

// Armed reports whether the quiet window is counting down.
func (a *AmbientController) Armed() bool { return a.armed }
