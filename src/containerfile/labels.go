package containerfile

import "strings"

// LabelKey is a recognized io.daemonless.* label name.
type LabelKey string

const (
	LabelCategory        LabelKey = "io.daemonless.category"
	LabelPackages        LabelKey = "io.daemonless.packages"
	LabelUpstreamMode    LabelKey = "io.daemonless.upstream-mode"
	LabelUpstreamURL     LabelKey = "io.daemonless.upstream-url"
	LabelUpstreamRepo    LabelKey = "io.daemonless.upstream-repo"
	LabelUpstreamPackage LabelKey = "io.daemonless.upstream-package"
	LabelUpstreamBranch  LabelKey = "io.daemonless.upstream-branch"
	LabelWIP             LabelKey = "io.daemonless.wip"
)

// Labels lists every recognized key in extraction order.
var Labels = []LabelKey{
	LabelCategory,
	LabelPackages,
	LabelUpstreamMode,
	LabelUpstreamURL,
	LabelUpstreamRepo,
	LabelUpstreamPackage,
	LabelUpstreamBranch,
	LabelWIP,
}

// packagesPlaceholder is the label value that refers back to ARG PACKAGES.
const packagesPlaceholder = "${PACKAGES}"

// LabelValue is a label's quoted value. Only the packages label ever
// resolves to a list; every other label keeps its raw string.
type LabelValue struct {
	Raw  string   // the literal value between the quotes
	List []string // non-nil when the value resolved to a list
}

// IsList reports whether the value resolved to a list.
func (v LabelValue) IsList() bool { return v.List != nil }

// Values returns the list form, wrapping a plain string in a one-element slice.
func (v LabelValue) Values() []string {
	if v.List != nil {
		out := make([]string, len(v.List))
		copy(out, v.List)
		return out
	}
	return []string{v.Raw}
}

// String returns the raw value, or the list joined by commas.
func (v LabelValue) String() string {
	if v.List != nil {
		return strings.Join(v.List, ",")
	}
	return v.Raw
}

// resolvePackages applies the packages-label rules: the ${PACKAGES}
// placeholder expands to the ARG tokens, a comma list is split as-is with
// no trimming, anything else is kept verbatim.
func resolvePackages(raw string, arg []string) LabelValue {
	if raw == packagesPlaceholder && len(arg) > 0 {
		list := make([]string, len(arg))
		copy(list, arg)
		return LabelValue{Raw: raw, List: list}
	}
	if strings.Contains(raw, ",") {
		return LabelValue{Raw: raw, List: strings.Split(raw, ",")}
	}
	return LabelValue{Raw: raw}
}
