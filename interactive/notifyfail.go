package interactive

// SetFailString installs a plain-text notify-fail message on ip, clearing
// whatever alternative (string or callable) was previously installed.
func SetFailString(ip *State, s string) {
	ip.FailMessage = FailMessage{String: s}
	ip.Flags.clear(NotifyFailFunc)
}

// SetFailFunc installs a notify-fail callable on ip, clearing whatever
// alternative was previously installed.
func SetFailFunc(ip *State, fn Callable) {
	ip.FailMessage = FailMessage{Func: fn}
	ip.Flags.set(NotifyFailFunc)
}

// ClearNotify resets the notify-fail slot entirely. Called unconditionally
// at the top of ordinary command processing in the original, so a stale
// install from a previous command never leaks into the next one.
func ClearNotify(ip *State) {
	ip.FailMessage = FailMessage{}
	ip.Flags.clear(NotifyFailFunc)
}
