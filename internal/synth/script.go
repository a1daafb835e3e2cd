package synth

// ScriptMode selects which writing system the poster text is rendered in.
// It drives the choice of image model: CJK text needs the text-capable
// model, Latin text can use the fast one.
type ScriptMode string

const (
	// ScriptAuto detects the script from the proposal text.
	ScriptAuto ScriptMode = "auto"
	// ScriptLatin forces the Latin rendering path.
	ScriptLatin ScriptMode = "latin"
	// ScriptCJK forces the CJK rendering path.
	ScriptCJK ScriptMode = "cjk"
)

// DetectScript reports ScriptCJK when the text contains at least one
// character from the unified CJK ranges, ScriptLatin otherwise. The same
// input always yields the same answer.
func DetectScript(text string) ScriptMode {
	for _, r := range text {
		switch {
		case r >= 0x4E00 && r <= 0x9FFF: // CJK Unified Ideographs
			return ScriptCJK
		case r >= 0x3400 && r <= 0x4DBF: // Extension A
			return ScriptCJK
		case r >= 0xF900 && r <= 0xFAFF: // Compatibility Ideographs
			return ScriptCJK
		}
	}
	return ScriptLatin
}

// resolve collapses ScriptAuto to a concrete mode for the given text.
func (m ScriptMode) resolve(text string) ScriptMode {
	if m == ScriptAuto || m == "" {
		return DetectScript(text)
	}
	return m
}
