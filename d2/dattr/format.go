package dattr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/thanhnguyen2187/d2-savior/d2/derr"
)

// FormatTemplate fills "{}" placeholders in order and "{N}" placeholders by
// index. "{{" and "}}" produce literal braces. Surplus args are ignored.
func FormatTemplate(template string, args []any) (string, error) {
	var builder strings.Builder
	next := 0
	for i := 0; i < len(template); i++ {
		c := template[i]
		switch {
		case c == '{' && i+1 < len(template) && template[i+1] == '{':
			builder.WriteByte('{')
			i++
		case c == '}' && i+1 < len(template) && template[i+1] == '}':
			builder.WriteByte('}')
			i++
		case c == '{':
			end := strings.IndexByte(template[i:], '}')
			if end < 0 {
				return "", derr.Formatf("unclosed placeholder in template %q", template)
			}
			field := template[i+1 : i+end]
			index := next
			if field == "" {
				next++
			} else {
				parsed, err := strconv.Atoi(field)
				if err != nil {
					return "", derr.Formatf("bad placeholder {%s} in template %q", field, template)
				}
				index = parsed
			}
			if index < 0 || index >= len(args) {
				return "", derr.Formatf("placeholder %d out of range in template %q", index, template)
			}
			fmt.Fprint(&builder, args[index])
			i += end
		default:
			builder.WriteByte(c)
		}
	}
	return builder.String(), nil
}
