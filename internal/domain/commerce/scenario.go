package commerce

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed scenarios.yaml
var demoScenariosYAML []byte

// VoiceScenario is a canned voice transcript a demo user can pick instead
// of speaking. Real voice capture is out of scope.
type VoiceScenario struct {
	ID         string `yaml:"id" json:"id"`
	Title      string `yaml:"title" json:"title"`
	Language   string `yaml:"language" json:"language"`
	Transcript string `yaml:"transcript" json:"transcript"`
}

// DemoScenarios returns the embedded scenario fixtures.
func DemoScenarios() ([]VoiceScenario, error) {
	var doc struct {
		Scenarios []VoiceScenario `yaml:"scenarios"`
	}
	if err := yaml.Unmarshal(demoScenariosYAML, &doc); err != nil {
		return nil, fmt.Errorf("decode demo scenarios: %w", err)
	}
	return doc.Scenarios, nil
}
