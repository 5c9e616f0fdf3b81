package artifact

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Validate parses content as HCL native syntax and returns the parser's
// diagnostics. It checks syntax only; provider schemas are not consulted.
func Validate(content, filename string) hcl.Diagnostics {
	parser := hclparse.NewParser()
	_, diags := parser.ParseHCL([]byte(content), filename)
	return diags
}
