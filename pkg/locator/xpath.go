package locator

import (
	"fmt"
	"strings"

	"github.com/recorderlab-dev/recorder-insight/pkg/scenario"
)

// ContextualXPath synthesizes a replacement XPath from the element
// attributes captured at record time. Preference order: resource-id,
// class + content-desc, class + text, then bare text or content-desc.
// Returns "" when nothing usable was captured.
func ContextualXPath(a scenario.Action) string {
	id := strings.TrimSpace(a.ElementID)
	class := strings.TrimSpace(a.ElementClass)
	desc := strings.TrimSpace(a.ElementContentDesc)
	text := strings.TrimSpace(a.ElementText)

	switch {
	case id != "":
		return fmt.Sprintf("//*[@resource-id=%s]", xpathLiteral(id))
	case class != "" && desc != "":
		return fmt.Sprintf("//%s[@content-desc=%s]", class, xpathLiteral(desc))
	case class != "" && text != "":
		return fmt.Sprintf("//%s[@text=%s]", class, xpathLiteral(text))
	case text != "":
		return fmt.Sprintf("//*[@text=%s]", xpathLiteral(text))
	case desc != "":
		return fmt.Sprintf("//*[@content-desc=%s]", xpathLiteral(desc))
	}
	return ""
}

// BestDisplay returns the most recognizable locator string for the
// action: elementId, then content-desc, then text, then the raw locator.
// Returns "" when the action carries no textual locator at all.
func BestDisplay(a scenario.Action) string {
	for _, s := range []string{a.ElementID, a.ElementContentDesc, a.ElementText, a.Locator} {
		if v := strings.TrimSpace(s); v != "" {
			return v
		}
	}
	return ""
}

// TargetLabel returns a short human label for the element the action
// targets: text first, then content-desc, then the tail segment of the
// resource-id ("com.app:id/login_button" -> "login_button").
func TargetLabel(a scenario.Action) string {
	if v := strings.TrimSpace(a.ElementText); v != "" {
		return v
	}
	if v := strings.TrimSpace(a.ElementContentDesc); v != "" {
		return v
	}
	id := strings.TrimSpace(a.ElementID)
	if id == "" {
		return ""
	}
	if i := strings.LastIndexAny(id, "/:"); i >= 0 && i+1 < len(id) {
		return id[i+1:]
	}
	return id
}

// xpathLiteral quotes a value for use inside an XPath predicate.
// Values containing single quotes fall back to double quotes.
func xpathLiteral(v string) string {
	if !strings.Contains(v, "'") {
		return "'" + v + "'"
	}
	return `"` + strings.ReplaceAll(v, `"`, "") + `"`
}
