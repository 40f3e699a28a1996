package composition

import (
	"strings"

	"github.com/amruth-sn/anvil/internal/config"
)

// conditionContext builds the flat evaluation context for inclusion
// conditions: "<category>" -> provider and "has_<category>" -> "true" for
// every active selection.
func conditionContext(selections []ServiceSelection) map[string]string {
	ctx := make(map[string]string, len(selections)*2)
	for _, sel := range selections {
		key := sel.Category.String()
		ctx[key] = sel.Provider
		ctx["has_"+key] = "true"
	}
	return ctx
}

// filterFiles applies conditional inclusion: a file survives only if its
// explicit rule (when one matches its path) and the implicit provenance
// rule both pass.
func (e *Engine) filterFiles(files []ComposedFile, selections []ServiceSelection, cc *config.CompositionConfig) []ComposedFile {
	ctx := conditionContext(selections)

	kept := files[:0]
	for _, file := range files {
		if !e.explicitConditionHolds(file, ctx, cc) {
			continue
		}
		if !implicitConditionHolds(file, ctx) {
			continue
		}
		kept = append(kept, file)
	}
	return kept
}

// explicitConditionHolds evaluates the conditional_files rule matching this
// file's exact output path, if any. Files with no matching rule pass.
func (e *Engine) explicitConditionHolds(file ComposedFile, ctx map[string]string, cc *config.CompositionConfig) bool {
	if cc == nil {
		return true
	}
	for _, rule := range cc.ConditionalFiles {
		if file.Path == rule.Path {
			return e.evaluateCondition(rule.Condition, ctx)
		}
	}
	return true
}

// implicitConditionHolds keeps base-template and merged files always, and
// service files only when that exact (category, provider) pair is an
// active selection. A service directory may ship files for providers that
// were not chosen; those must be dropped.
func implicitConditionHolds(file ComposedFile, ctx map[string]string) bool {
	switch file.Source.Kind {
	case SourceBaseTemplate, SourceMerged:
		return true
	case SourceService:
		return ctx[file.Source.Category.String()] == file.Source.Provider
	}
	return true
}

// evaluateCondition evaluates a condition string left to right. The grammar
// is deliberately small: "A && B" conjunction, "A || B" disjunction, and
// the three leaf forms handled by evaluateLeaf.
func (e *Engine) evaluateCondition(condition string, ctx map[string]string) bool {
	condition = strings.TrimSpace(condition)

	if strings.Contains(condition, "&&") {
		for _, part := range strings.Split(condition, "&&") {
			if !e.evaluateLeaf(part, ctx) {
				return false
			}
		}
		return true
	}

	if strings.Contains(condition, "||") {
		for _, part := range strings.Split(condition, "||") {
			if e.evaluateLeaf(part, ctx) {
				return true
			}
		}
		return false
	}

	return e.evaluateLeaf(condition, ctx)
}

// evaluateLeaf handles the three leaf forms:
//
//	services.<category> == '<value>'
//	services.<category> in ['<v1>', '<v2>']
//	has_<category>
//
// An unrecognized leaf evaluates to true. The fail-open default is
// intentional permissiveness: strict parsing would silently drop user
// files on a typo. The warn hook makes the inclusion observable.
func (e *Engine) evaluateLeaf(condition string, ctx map[string]string) bool {
	condition = strings.TrimSpace(condition)

	if strings.Contains(condition, "==") {
		parts := strings.SplitN(condition, "==", 2)
		left := strings.TrimSpace(parts[0])
		right := trimQuotes(strings.TrimSpace(parts[1]))
		if category, ok := strings.CutPrefix(left, "services."); ok {
			return ctx[category] == right
		}
	}

	if strings.Contains(condition, " in ") {
		parts := strings.SplitN(condition, " in ", 2)
		left := strings.TrimSpace(parts[0])
		right := strings.TrimSpace(parts[1])
		if category, ok := strings.CutPrefix(left, "services."); ok &&
			strings.HasPrefix(right, "[") && strings.HasSuffix(right, "]") {
			selected, active := ctx[category]
			if !active {
				return false
			}
			for _, option := range strings.Split(right[1:len(right)-1], ",") {
				if trimQuotes(strings.TrimSpace(option)) == selected {
					return true
				}
			}
			return false
		}
	}

	if strings.HasPrefix(condition, "has_") {
		return ctx[condition] == "true"
	}

	e.warnf("condition %q not recognized; including file (fail-open)", condition)
	return true
}

func trimQuotes(s string) string {
	s = strings.Trim(s, "'")
	return strings.Trim(s, `"`)
}
