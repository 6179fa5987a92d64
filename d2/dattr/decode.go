// Package dattr decodes magic attribute lists and renders them as text.
package dattr

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/thanhnguyen2187/d2-savior/d2/derr"
	"github.com/thanhnguyen2187/d2-savior/d2/dref"
	"github.com/thanhnguyen2187/d2-savior/d2/rbits"
)

// Decode reads attribute records until the terminator and returns one line
// per visible attribute, in stream order.
func Decode(reader *rbits.Reader, lookup dref.Lookup) ([]string, error) {
	lines := []string{}
	for {
		id, err := reader.Read(IDWidth)
		if err != nil {
			return nil, errors.Wrap(err, "dattr.Decode error")
		}
		if id == Terminator {
			return lines, nil
		}

		attr, ok := lookup.MagicAttr(int(id))
		if !ok {
			return nil, derr.Formatf("unknown magic attribute id: %d", id)
		}
		values := make([]int, len(attr.Bits))
		for i, width := range attr.Bits {
			raw, err := reader.Read(width)
			if err != nil {
				return nil, errors.Wrapf(err, "dattr.Decode error: attribute %d", id)
			}
			values[i] = int(raw) - attr.Bias
		}
		if attr.Invisible {
			continue
		}

		line, err := Format(int(id), attr, values, lookup)
		if err != nil {
			return nil, errors.Wrap(err, "dattr.Decode error")
		}
		lines = append(lines, line)
	}
}

// Format renders bias-adjusted values of attribute id through its template,
// replacing class, skill and monster indexes with their names.
func Format(id int, attr dref.MagicAttr, values []int, lookup dref.Lookup) (string, error) {
	if id == IDPoison {
		if len(values) < 3 {
			return "", derr.Formatf("poison attribute needs 3 values, got %d", len(values))
		}
		return PoisonText(values[0], values[1], values[2], attr.Template)
	}

	args := lo.Map(values, func(value int, _ int) any {
		return value
	})
	resolve := func(index int, name func(int) (string, bool), kind string) error {
		if index >= len(values) {
			return derr.Formatf("attribute %d has no value %d", id, index)
		}
		text, ok := name(values[index])
		if !ok {
			return derr.Formatf("attribute %d: unknown %s %d", id, kind, values[index])
		}
		args[index] = text
		return nil
	}

	var err error
	switch {
	case lo.Contains(classFirstIDs, id):
		err = resolve(0, lookup.ClassName, "class")
	case lo.Contains(skillFirstIDs, id):
		err = resolve(0, lookup.SkillName, "skill")
	case id == IDReanimate:
		err = resolve(0, lookup.MonsterName, "monster")
	case id == IDSkillTree:
		err = resolveSkillTree(id, values, args, lookup)
	case lo.Contains(skillSecondIDs, id):
		err = resolve(1, lookup.SkillName, "skill")
	}
	if err != nil {
		return "", err
	}
	return FormatTemplate(attr.Template, args)
}

func resolveSkillTree(id int, values []int, args []any, lookup dref.Lookup) error {
	if len(values) < 2 {
		return derr.Formatf("attribute %d needs 2 values, got %d", id, len(values))
	}
	class := values[1]
	offset, ok := lookup.SkillTreeOffset(class)
	if !ok {
		return derr.Formatf("attribute %d: unknown class %d", id, class)
	}
	tree, ok := lookup.SkillTreeName(offset + values[0])
	if !ok {
		return derr.Formatf("attribute %d: unknown skill tree %d", id, offset+values[0])
	}
	className, _ := lookup.ClassName(class)
	args[0] = tree
	args[1] = className
	return nil
}
