package prompt

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/mark3labs/tfgen/internal/config"
)

// DefaultTemplate is the built-in generation prompt. {{region}} and
// {{request}} are filled in before the call.
const DefaultTemplate = `You are a helpful AI assistant that generates Terraform code for infrastructure deployment.
I will describe the infrastructure I need, and you will provide the Terraform code.
Make sure the code is well-formatted, complete, and ready to be deployed.
Include comments to explain each section of the code.
Include a terraform provider block, for example:

` + "```terraform" + `
terraform {
  required_providers {
    aws = {
      source  = "hashicorp/aws"
      version = "~> 4.0"
    }
  }
}

provider "aws" {
  region = "{{region}}"
}
` + "```" + `

# Requested infrastructure:
Please generate Terraform code for {{request}} in the {{region}} region.
`

var placeholderRe = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Template is a prompt with {{name}} placeholders.
type Template struct {
	Text string
	Vars []string
}

// NewTemplate parses the placeholder names out of text.
func NewTemplate(text string) *Template {
	seen := make(map[string]bool)
	var vars []string
	for _, m := range placeholderRe.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			vars = append(vars, m[1])
		}
	}
	return &Template{Text: text, Vars: vars}
}

// LoadTemplate reads a prompt template from path. ${env://VAR} references
// in the file are resolved through lookup first. An empty path yields the
// built-in template.
func LoadTemplate(path string, lookup func(string) string) (*Template, error) {
	if path == "" {
		return NewTemplate(DefaultTemplate), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading prompt file %s: %w", path, err)
	}
	text, err := config.ExpandEnv(string(data), lookup)
	if err != nil {
		return nil, fmt.Errorf("prompt file %s: %w", path, err)
	}
	return NewTemplate(text), nil
}

// Render substitutes every placeholder. A placeholder with no value is an
// error so a typo in a custom prompt file is caught before the API call.
func (t *Template) Render(values map[string]string) (string, error) {
	var missing []string
	for _, name := range t.Vars {
		if _, ok := values[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("missing prompt variables: %s", strings.Join(missing, ", "))
	}

	return placeholderRe.ReplaceAllStringFunc(t.Text, func(ph string) string {
		return values[ph[2:len(ph)-2]]
	}), nil
}
