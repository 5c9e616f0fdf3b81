package artifact

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantError bool
	}{
		{
			name: "valid terraform",
			content: `terraform {
  required_providers {
    aws = {
      source  = "hashicorp/aws"
      version = "~> 4.0"
    }
  }
}

provider "aws" {
  region = "us-east-1"
}

resource "aws_s3_bucket" "example" {
  bucket = "my-bucket"
}
`,
		},
		{
			name:      "unclosed block",
			content:   "resource \"aws_s3_bucket\" \"b\" {\n  bucket = \"x\"\n",
			wantError: true,
		},
		{
			name:      "markdown fences",
			content:   "```terraform\nprovider \"aws\" {}\n```\n",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := Validate(tt.content, "main.tf")
			if diags.HasErrors() != tt.wantError {
				t.Errorf("HasErrors() = %v, want %v (diags: %v)", diags.HasErrors(), tt.wantError, diags)
			}
		})
	}
}
