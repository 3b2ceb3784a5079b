package manifest

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/classattr/internal/ctxlog"
)

// ClassDef is the format-agnostic representation of a `class` block.
// It carries everything needed to build a classattr.Class once all of
// its bases are available.
type ClassDef struct {
	Name        string
	Description string
	Extends     []string
	FreshGroup  bool
	Values      map[string]ValueDef
	Computed    map[string]ComputedDef
	Attrs       map[string]AttrDef
	FilePath    string
}

// ValueDef defines a `value` block: a shared value slot, optionally
// constrained to a declared type.
type ValueDef struct {
	Name string

	// Type is cty.DynamicPseudoType when the block declares `any` or
	// omits the type, which yields an unconstrained slot.
	Type cty.Type

	// Default is the initial slot value; cty.NilVal when omitted.
	Default cty.Value
}

// ComputedDef defines a `computed` block. Getter and Setter are the
// registration names of compiled accessors; Setter may be empty for a
// read-only slot.
type ComputedDef struct {
	Name   string
	Getter string
	Setter string
}

// AttrDef defines an `attr` block: a plain class-body value. Whether it
// becomes an ordinary class attribute or a content mutation of an
// inherited slot is decided by the class-binding protocol, not here.
type AttrDef struct {
	Name  string
	Value cty.Value
}

// classRootSchema defines the top-level structure of a manifest file,
// expecting one or more 'class' blocks.
type classRootSchema struct {
	Classes []*hclClass `hcl:"class,block"`
}

// hclClass represents a single 'class' block for decoding purposes.
type hclClass struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// classBodySchema defines the schema for the body of a 'class' block.
var classBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "description"},
		{Name: "extends"},
		{Name: "fresh_group"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "value", LabelNames: []string{"name"}},
		{Type: "computed", LabelNames: []string{"name"}},
		{Type: "attr", LabelNames: []string{"name"}},
	},
}

var valueBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "type"},
		{Name: "default"},
	},
}

var computedBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "getter"},
		{Name: "setter"},
	},
}

var attrBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "value"},
	},
}

// ParseClassFile decodes an HCL file that contains one or more 'class'
// blocks.
func ParseClassFile(ctx context.Context, hclFile *hcl.File, filePath string) ([]*ClassDef, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing class definitions from file", "file_path", filePath)

	var allDiags hcl.Diagnostics
	if hclFile == nil {
		allDiags = append(allDiags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "HCL file is nil",
		})
		return nil, allDiags
	}

	schema := &classRootSchema{}
	diags := gohcl.DecodeBody(hclFile.Body, nil, schema)
	allDiags = append(allDiags, diags...)
	if diags.HasErrors() {
		return nil, allDiags
	}

	defs := make([]*ClassDef, 0, len(schema.Classes))

	for _, parsed := range schema.Classes {
		bodyContent, contentDiags := parsed.Body.Content(classBodySchema)
		allDiags = append(allDiags, contentDiags...)
		if contentDiags.HasErrors() {
			continue // Skip this class but keep parsing the others.
		}

		def := &ClassDef{
			Name:     parsed.Name,
			FilePath: filePath,
			Values:   make(map[string]ValueDef),
			Computed: make(map[string]ComputedDef),
			Attrs:    make(map[string]AttrDef),
		}

		if attr, exists := bodyContent.Attributes["description"]; exists {
			exprDiags := gohcl.DecodeExpression(attr.Expr, nil, &def.Description)
			allDiags = append(allDiags, exprDiags...)
		}
		if attr, exists := bodyContent.Attributes["extends"]; exists {
			exprDiags := gohcl.DecodeExpression(attr.Expr, nil, &def.Extends)
			allDiags = append(allDiags, exprDiags...)
		}
		if attr, exists := bodyContent.Attributes["fresh_group"]; exists {
			exprDiags := gohcl.DecodeExpression(attr.Expr, nil, &def.FreshGroup)
			allDiags = append(allDiags, exprDiags...)
		}

		// Attribute names share one namespace across all three block
		// kinds, so duplicates are detected in declaration order.
		declared := make(map[string]struct{})
		for _, block := range bodyContent.Blocks {
			name := block.Labels[0]
			if _, exists := declared[name]; exists {
				allDiags = append(allDiags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Duplicate attribute declaration",
					Detail:   fmt.Sprintf("An attribute named '%s' has already been declared in class '%s'.", name, def.Name),
					Subject:  &block.DefRange,
				})
				continue
			}

			var blockDiags hcl.Diagnostics
			switch block.Type {
			case "value":
				blockDiags = parseValueBlock(block, def)
			case "computed":
				blockDiags = parseComputedBlock(block, def)
			case "attr":
				blockDiags = parseAttrBlock(block, def)
			}
			allDiags = append(allDiags, blockDiags...)
			if !blockDiags.HasErrors() {
				declared[name] = struct{}{}
			}
		}

		defs = append(defs, def)
	}

	if allDiags.HasErrors() {
		return nil, allDiags
	}

	logger.Debug("Successfully parsed class definitions", "count", len(defs))
	return defs, nil
}

// parseValueBlock decodes a `value` block into a ValueDef.
func parseValueBlock(block *hcl.Block, def *ClassDef) hcl.Diagnostics {
	var diags hcl.Diagnostics
	name := block.Labels[0]

	bodyContent, contentDiags := block.Body.Content(valueBodySchema)
	diags = append(diags, contentDiags...)
	if contentDiags.HasErrors() {
		return diags
	}

	ctyType := cty.DynamicPseudoType
	if typeAttr, exists := bodyContent.Attributes["type"]; exists {
		var typeDiags hcl.Diagnostics
		ctyType, typeDiags = typeKeywordToCty(typeAttr.Expr)
		diags = append(diags, typeDiags...)
		if typeDiags.HasErrors() {
			return diags
		}
	}

	defaultValue := cty.NilVal
	if defaultAttr, exists := bodyContent.Attributes["default"]; exists {
		// A nil eval context is used because defaults must be literal values.
		val, valDiags := defaultAttr.Expr.Value(nil)
		diags = append(diags, valDiags...)
		if valDiags.HasErrors() {
			return diags
		}

		// A constrained slot requires a conforming default.
		if !ctyType.Equals(cty.DynamicPseudoType) {
			converted, err := convert.Convert(val, ctyType)
			if err != nil {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Invalid default value type",
					Detail:   fmt.Sprintf("The default value for '%s' is not compatible with its type, '%s'.", name, ctyType.FriendlyName()),
					Subject:  defaultAttr.Expr.Range().Ptr(),
				})
				return diags
			}
			val = converted
		}
		defaultValue = val
	}

	def.Values[name] = ValueDef{
		Name:    name,
		Type:    ctyType,
		Default: defaultValue,
	}
	return diags
}

// parseComputedBlock decodes a `computed` block into a ComputedDef.
func parseComputedBlock(block *hcl.Block, def *ClassDef) hcl.Diagnostics {
	var diags hcl.Diagnostics
	name := block.Labels[0]

	bodyContent, contentDiags := block.Body.Content(computedBodySchema)
	diags = append(diags, contentDiags...)
	if contentDiags.HasErrors() {
		return diags
	}

	getterAttr, exists := bodyContent.Attributes["getter"]
	if !exists {
		missingItemRange := block.Body.MissingItemRange()
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing 'getter' attribute",
			Detail:   "The 'getter' attribute is required for all computed blocks.",
			Subject:  &missingItemRange,
		})
		return diags
	}

	computed := ComputedDef{Name: name}
	exprDiags := gohcl.DecodeExpression(getterAttr.Expr, nil, &computed.Getter)
	diags = append(diags, exprDiags...)

	if setterAttr, exists := bodyContent.Attributes["setter"]; exists {
		exprDiags := gohcl.DecodeExpression(setterAttr.Expr, nil, &computed.Setter)
		diags = append(diags, exprDiags...)
	}

	if diags.HasErrors() {
		return diags
	}

	def.Computed[name] = computed
	return diags
}

// parseAttrBlock decodes an `attr` block into an AttrDef.
func parseAttrBlock(block *hcl.Block, def *ClassDef) hcl.Diagnostics {
	var diags hcl.Diagnostics
	name := block.Labels[0]

	bodyContent, contentDiags := block.Body.Content(attrBodySchema)
	diags = append(diags, contentDiags...)
	if contentDiags.HasErrors() {
		return diags
	}

	valueAttr, exists := bodyContent.Attributes["value"]
	if !exists {
		missingItemRange := block.Body.MissingItemRange()
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing 'value' attribute",
			Detail:   "The 'value' attribute is required for all attr blocks.",
			Subject:  &missingItemRange,
		})
		return diags
	}

	val, valDiags := valueAttr.Expr.Value(nil)
	diags = append(diags, valDiags...)
	if valDiags.HasErrors() {
		return diags
	}

	def.Attrs[name] = AttrDef{Name: name, Value: val}
	return diags
}
