package analysis

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/recorderlab-dev/recorder-insight/pkg/core"
	"github.com/recorderlab-dev/recorder-insight/pkg/locator"
	"github.com/recorderlab-dev/recorder-insight/pkg/scenario"
)

// Rule is a config-defined per-step check. When evaluates against each
// step's environment (see ruleEnv) and a true result emits an issue.
type Rule struct {
	ID       string        `yaml:"id" json:"id"`
	Severity core.Severity `yaml:"severity" json:"severity"`
	Title    string        `yaml:"title" json:"title"`
	Detail   string        `yaml:"detail,omitempty" json:"detail,omitempty"`
	When     string        `yaml:"when" json:"when"`
}

type compiledRule struct {
	rule    Rule
	program *vm.Program
}

// WithRules compiles and attaches config-defined rules. Compilation
// errors surface here, at configuration time; the analysis path itself
// still never errors.
func (a *Analyzer) WithRules(rules []Rule) (*Analyzer, error) {
	for _, r := range rules {
		if r.ID == "" || r.When == "" {
			return nil, fmt.Errorf("rule needs both id and when (got id=%q)", r.ID)
		}
		if !r.Severity.Valid() {
			return nil, fmt.Errorf("rule %q: unknown severity %q", r.ID, r.Severity)
		}
		program, err := expr.Compile(r.When, expr.Env(ruleEnv(0, scenario.Action{})), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("rule %q: compile when: %w", r.ID, err)
		}
		a.rules = append(a.rules, compiledRule{rule: r, program: program})
	}
	return a, nil
}

// applyRules evaluates every attached rule against one step. Runtime
// evaluation errors read as "did not match".
func (a *Analyzer) applyRules(i int, action scenario.Action) []Issue {
	if len(a.rules) == 0 {
		return nil
	}

	env := ruleEnv(i, action)
	var issues []Issue
	for _, cr := range a.rules {
		out, err := expr.Run(cr.program, env)
		if err != nil {
			continue
		}
		matched, ok := out.(bool)
		if !ok || !matched {
			continue
		}
		title := cr.rule.Title
		if title == "" {
			title = fmt.Sprintf("Rule %s matched at step %d", cr.rule.ID, i)
		}
		issues = append(issues, Issue{
			ID:        cr.rule.ID,
			Severity:  cr.rule.Severity,
			Title:     title,
			Detail:    cr.rule.Detail,
			StepIndex: i,
		})
	}
	return issues
}

// ruleEnv builds the expression environment for one step.
func ruleEnv(i int, a scenario.Action) map[string]interface{} {
	waitMs, _ := a.WaitMillis()
	return map[string]interface{}{
		"index":       i,
		"type":        string(a.Type),
		"description": a.Description,
		"value":       a.Value,
		"enabled":     a.IsEnabled(),
		"stable":      locator.HasStable(a),
		"score":       locator.Score(a),
		"waitMs":      waitMs,
	}
}
