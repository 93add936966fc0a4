// Package iotrule models an AWS::IoT::TopicRule as a typed construct: it
// registers the declarative resource record with a provisioning stack and
// exposes the rule's derived identity (ARN and name). The rule's SQL
// evaluation and action execution happen in AWS after deployment; nothing
// here runs at message time.
package iotrule

import (
	"fmt"
	"regexp"

	"github.com/awslabs/goformation/cloudformation"

	"github.com/awslabs/aws-iot-rules/stack"
)

// CloudFormationType is the resource type registered for every topic rule.
const CloudFormationType = "AWS::IoT::TopicRule"

// Scope is the slice of the provisioning engine a topic rule needs: record
// registration, ARN composition and physical name derivation. *stack.Stack
// implements it.
type Scope interface {
	AddResource(logicalID string, res stack.Resource) error
	ComposeArn(service, resourceType, resourceName string) string
	PhysicalName(logicalID string) string
}

// Payload is the TopicRulePayload property of the emitted resource.
// Actions carries no omitempty on purpose: CloudFormation requires the key
// even when the list is empty.
type Payload struct {
	Actions          []cloudformation.AWSIoTTopicRule_Action `json:"Actions"`
	AwsIotSqlVersion string                                  `json:"AwsIotSqlVersion,omitempty"`
	Description      string                                  `json:"Description,omitempty"`
	RuleDisabled     *bool                                   `json:"RuleDisabled,omitempty"`
	Sql              string                                  `json:"Sql"`
}

// Properties is the full property set of an AWS::IoT::TopicRule record.
type Properties struct {
	RuleName         string   `json:"RuleName,omitempty"`
	TopicRulePayload *Payload `json:"TopicRulePayload"`
}

// Props configures New.
type Props struct {
	// RuleName is the rule's physical name. When empty, a deterministic
	// name is derived from the stack and the logical ID.
	RuleName string

	// Description is a human readable summary carried in the payload.
	Description string

	// Enabled toggles the rule. Left nil, the deployed default (enabled)
	// applies and no RuleDisabled key is emitted.
	Enabled *bool

	// SQL selects the messages the rule matches. Required.
	SQL SQL
}

// AWS requires topic rule names to be alphanumeric/underscore, 1-128 chars.
var ruleNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{1,128}$`)

// TopicRule is a rule registered with a stack. Its identity is computed at
// construction and immutable afterwards.
type TopicRule struct {
	arn  string
	name string
}

// New binds the SQL configuration, registers an AWS::IoT::TopicRule record
// with the scope under the given logical ID, and derives the rule's
// identity. The emitted action list is always present and always empty;
// typed actions are deployed out of band.
func New(scope Scope, id string, props Props) (*TopicRule, error) {
	if props.SQL == nil {
		return nil, fmt.Errorf("topic rule %q: SQL is required", id)
	}

	name := props.RuleName
	if name == "" {
		name = scope.PhysicalName(id)
	} else if !ruleNamePattern.MatchString(name) {
		return nil, fmt.Errorf("topic rule %q: rule name must match [a-zA-Z0-9_]{1,128}, got %q", id, name)
	}

	config, err := props.SQL.Bind()
	if err != nil {
		return nil, fmt.Errorf("topic rule %q: %w", id, err)
	}

	payload := &Payload{
		Actions:          []cloudformation.AWSIoTTopicRule_Action{},
		AwsIotSqlVersion: config.AwsIotSqlVersion,
		Description:      props.Description,
		Sql:              config.Sql,
	}
	if props.Enabled != nil {
		disabled := !*props.Enabled
		payload.RuleDisabled = &disabled
	}

	record := stack.Resource{
		Type: CloudFormationType,
		Properties: &Properties{
			RuleName:         name,
			TopicRulePayload: payload,
		},
	}
	if err := scope.AddResource(id, record); err != nil {
		return nil, err
	}

	return &TopicRule{
		arn:  scope.ComposeArn("iot", "rule", name),
		name: name,
	}, nil
}

// Arn returns the rule's fully qualified ARN.
func (r *TopicRule) Arn() string {
	return r.arn
}

// Name returns the rule's physical name, the trailing segment of its ARN.
func (r *TopicRule) Name() string {
	return r.name
}

// ImportedRule is a read-only reference to a topic rule that already
// exists, usable wherever a live rule identity is needed. Importing never
// registers anything with a stack.
type ImportedRule struct {
	arn  string
	name string
}

// FromRuleArn builds a rule reference from an existing ARN. The name is
// extracted with the slash resource name convention; an ARN without a
// resource name after the `rule/` separator fails with a
// *stack.ValidationError.
func FromRuleArn(arn string) (*ImportedRule, error) {
	components, err := stack.SplitResourceName(arn)
	if err != nil {
		return nil, err
	}
	return &ImportedRule{arn: arn, name: components.ResourceName}, nil
}

// Arn returns the ARN the rule was imported with, unchanged.
func (r *ImportedRule) Arn() string {
	return r.arn
}

// Name returns the rule name extracted from the ARN.
func (r *ImportedRule) Name() string {
	return r.name
}
