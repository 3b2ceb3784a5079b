package manifest

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// typeKeywordToCty converts an HCL expression that represents a type
// keyword (e.g. `number`) into its corresponding cty.Type. The `any`
// keyword maps to cty.DynamicPseudoType, which declares an
// unconstrained value slot.
func typeKeywordToCty(expr hcl.Expression) (cty.Type, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	// We expect a simple identifier like `string`, not a complex expression.
	traversal, hclDiags := hcl.AbsTraversalForExpr(expr)
	if hclDiags.HasErrors() || len(traversal) != 1 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid type specification",
			Detail:   "The 'type' attribute must be a simple type keyword like 'string', 'number', 'bool', or 'any', not a complex expression.",
			Subject:  expr.Range().Ptr(),
		})
		return cty.NilType, diags
	}

	typeName := traversal.RootName()
	switch typeName {
	case "string":
		return cty.String, diags
	case "number":
		return cty.Number, diags
	case "bool":
		return cty.Bool, diags
	case "any":
		return cty.DynamicPseudoType, diags

	case "list", "map", "set", "object", "tuple":
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported type",
			Detail:   fmt.Sprintf("The complex type '%s' is not supported for value slots. Declare the slot as 'any' to hold collection values without a constraint.", typeName),
			Subject:  expr.Range().Ptr(),
		})
		return cty.NilType, diags

	default:
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported type",
			Detail:   fmt.Sprintf("The keyword '%s' is not a valid type. Supported types are: string, number, bool, any.", typeName),
			Subject:  expr.Range().Ptr(),
		})
		return cty.NilType, diags
	}
}
