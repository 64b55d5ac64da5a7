package scss

import "strings"

// useTable keeps the modules referenced by a file in order of first reference.
type useTable struct {
	order []Use
	seen  map[string]struct{}
}

func (t *useTable) record(module, alias string) {
	if t.seen == nil {
		t.seen = make(map[string]struct{})
	}
	if _, ok := t.seen[module]; ok {
		return
	}
	t.seen[module] = struct{}{}
	t.order = append(t.order, Use{Module: module, Alias: alias})
}

func (t *useTable) list() []Use {
	if len(t.order) == 0 {
		return nil
	}
	return append([]Use(nil), t.order...)
}

// header renders one @use line per module followed by a blank line.
func (t *useTable) header() string {
	if len(t.order) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, u := range t.order {
		sb.WriteString("@use '")
		sb.WriteString(u.Module)
		sb.WriteString("' as ")
		sb.WriteString(u.Alias)
		sb.WriteString(";\n")
	}
	sb.WriteString("\n")
	return sb.String()
}
