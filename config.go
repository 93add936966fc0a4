package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/codegangsta/cli"

	"github.com/awslabs/aws-iot-rules/iotrule"
	"github.com/awslabs/aws-iot-rules/stack"
)

/**
 Where do the region and account come from?

 Composed ARNs need a target environment, and there are three places a value
 can be defined: the rules configuration file, the shell's environment
 (AWS_REGION / AWS_ACCOUNT_ID), and the --region / --account CLI arguments.
 If a value is provided through more than one method, the method with higher
 priority wins.

 Priority (Highest to lowest)
	CLI argument
	Shell's Environment
	Rules configuration file

 All three may be absent, in which case ARNs are composed with empty region
 and account fields, the same way region-less AWS ARNs are written.
*/

// ruleSpec is one topic rule entry in the rules configuration file.
type ruleSpec struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	SQL         string `json:"sql"`
	SQLVersion  string `json:"sqlVersion,omitempty"`
	Description string `json:"description,omitempty"`
	Enabled     *bool  `json:"enabled,omitempty"`
}

// rulesConfig is the declarative input consumed by synth, deploy and serve.
type rulesConfig struct {
	Stack       string     `json:"stack"`
	Description string     `json:"description,omitempty"`
	Partition   string     `json:"partition,omitempty"`
	Region      string     `json:"region,omitempty"`
	Account     string     `json:"account,omitempty"`
	Rules       []ruleSpec `json:"rules"`
}

// loadRulesConfig reads and parses a rules configuration file.
func loadRulesConfig(filename string) (*rulesConfig, error) {

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read rules configuration %s: %w", filename, err)
	}

	config := &rulesConfig{}
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("could not parse rules configuration %s: %w", filename, err)
	}

	if config.Stack == "" {
		return nil, fmt.Errorf("rules configuration %s is missing a stack name", filename)
	}
	if len(config.Rules) == 0 {
		return nil, fmt.Errorf("rules configuration %s defines no rules", filename)
	}

	return config, nil
}

// resolveEnv applies the region/account priority scheme described above.
func resolveEnv(c *cli.Context, config *rulesConfig) stack.Env {

	env := stack.Env{
		Partition: config.Partition,
		Region:    config.Region,
		Account:   config.Account,
	}

	// Shell's environment, second priority
	if region, ok := os.LookupEnv("AWS_REGION"); ok {
		env.Region = region
	}
	if account, ok := os.LookupEnv("AWS_ACCOUNT_ID"); ok {
		env.Account = account
	}

	// CLI arguments, highest priority
	if c.String("region") != "" {
		env.Region = c.String("region")
	}
	if c.String("account") != "" {
		env.Account = c.String("account")
	}

	return env
}

// sqlForSpec maps a configured SQL version tag onto the right constructor.
// Unversioned rules get the 2016-03-23 engine, the version AWS recommends
// for new rules.
func sqlForSpec(spec ruleSpec) (iotrule.SQL, error) {
	switch spec.SQLVersion {
	case "", "2016-03-23":
		return iotrule.SQLVersion20160323(spec.SQL), nil
	case "2015-10-08":
		return iotrule.SQLVersion20151008(spec.SQL), nil
	case "beta":
		return iotrule.SQLBeta(spec.SQL), nil
	default:
		return nil, fmt.Errorf("rule %q: unknown SQL version %q (expected 2015-10-08, 2016-03-23 or beta)", spec.ID, spec.SQLVersion)
	}
}

// buildStack assembles a provisioning stack from the rules configuration,
// constructing one topic rule per entry in file order.
func buildStack(config *rulesConfig, env stack.Env) (*stack.Stack, error) {

	s := stack.New(config.Stack, env)
	s.SetDescription(config.Description)

	for _, spec := range config.Rules {
		if spec.ID == "" {
			return nil, fmt.Errorf("every rule needs an id, got an entry without one")
		}

		sql, err := sqlForSpec(spec)
		if err != nil {
			return nil, err
		}

		if _, err := iotrule.New(s, spec.ID, iotrule.Props{
			RuleName:    spec.Name,
			Description: spec.Description,
			Enabled:     spec.Enabled,
			SQL:         sql,
		}); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// loadStack is the common front half of synth, deploy and serve: read the
// configuration, resolve the environment and build the stack.
func loadStack(c *cli.Context) (*stack.Stack, *rulesConfig, error) {
	config, err := loadRulesConfig(c.String("config"))
	if err != nil {
		return nil, nil, err
	}

	s, err := buildStack(config, resolveEnv(c, config))
	if err != nil {
		return nil, nil, err
	}

	return s, config, nil
}
