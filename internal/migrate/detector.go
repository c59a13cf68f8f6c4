package migrate

import "regexp"

// DynamicPattern is an expression the migration tools cannot evaluate
// statically.
type DynamicPattern struct {
	Name  string
	Regex *regexp.Regexp
}

// DynamicPatterns defines the expressions that make a legacy config need
// manual attention before @eslint/migrate-config or @oxlint/migrate can
// convert it.
var DynamicPatterns = []DynamicPattern{
	{Name: "require.resolve()", Regex: regexp.MustCompile(`require\.resolve\s*\(`)},
	{Name: "spread expression", Regex: regexp.MustCompile(`\.\.\.\s*[A-Za-z_$(]`)},
	{Name: "computed extends", Regex: regexp.MustCompile(`\bextends\s*:\s*[A-Za-z_$][\w$.]*\s*\(`)},
	{Name: "path helper", Regex: regexp.MustCompile(`\bpath\.(?:join|resolve)\s*\(`)},
	{Name: "environment lookup", Regex: regexp.MustCompile(`\bprocess\.env\b`)},
	{Name: "non-literal require", Regex: regexp.MustCompile(`\brequire\s*\(\s*[^'"\s)]`)},
}

// MigrationDetector handles detection of config code that needs manual migration
type MigrationDetector struct {
	patterns []DynamicPattern
}

// NewMigrationDetector creates a detector using DynamicPatterns
func NewMigrationDetector() *MigrationDetector {
	return &MigrationDetector{patterns: DynamicPatterns}
}

// Find returns the names of the dynamic expressions present in content.
func (md *MigrationDetector) Find(content string) []string {
	var found []string
	for _, p := range md.patterns {
		if p.Regex.MatchString(content) {
			found = append(found, p.Name)
		}
	}
	return found
}

// NeedsManualMigration checks if content contains expressions the migration tools cannot handle
func (md *MigrationDetector) NeedsManualMigration(content string) bool {
	return len(md.Find(content)) > 0
}

// NeedsManualMigration is a convenience function for checking config content
func NeedsManualMigration(content string) bool {
	return NewMigrationDetector().NeedsManualMigration(content)
}
