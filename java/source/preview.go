package source

import "github.com/dhamidi/jparse/java/diag"

// Preview gates language features that are previews at the highest level.
type Preview struct {
	Enabled bool
	Level   Level
	Handler diag.Handler
}

// IsPreview reports whether f is a preview feature at the preview's level.
func (p *Preview) IsPreview(f Feature) bool {
	return features[f].preview && p.Level == MaxLevel
}

// IsEnabled reports whether preview features were enabled.
func (p *Preview) IsEnabled() bool {
	return p.Enabled
}

// WarnPreview reports a use of an enabled preview feature.
func (p *Preview) WarnPreview(pos int, f Feature) {
	if p.Handler == nil {
		return
	}
	p.Handler.Report(diag.Warnf(pos, diag.PreviewFeatureUse, f).WithFlags(diag.SourceLevel))
}

// DisabledError builds the error for a preview feature used while previews
// are disabled.
func (p *Preview) DisabledError(pos int, f Feature) diag.Diagnostic {
	return diag.Errorf(pos, diag.PreviewFeatureDisabled, f).WithFlags(diag.SourceLevel)
}

// Check validates a use of f at pos, reporting to h the error or preview
// warning that applies. It returns false when an error was reported.
func Check(h diag.Handler, p *Preview, lvl Level, pos int, f Feature) bool {
	if p.IsPreview(f) && !p.IsEnabled() {
		h.Report(p.DisabledError(pos, f))
		return false
	}
	if !f.AllowedInSource(lvl) {
		min := f.MinLevel()
		h.Report(diag.Errorf(pos, diag.FeatureNotSupported, f, lvl.Name(), min.Name()).WithFlags(diag.SourceLevel))
		return false
	}
	if p.IsPreview(f) {
		p.WarnPreview(pos, f)
	}
	return true
}
