// Package stack implements a minimal declarative provisioning graph: typed
// constructs register CloudFormation resource records against a Stack, which
// renders them into a deployable template. It also provides the ARN
// composition and splitting conventions constructs use to derive identities.
package stack

import (
	"errors"
	"fmt"
	"hash/fnv"
	"regexp"

	"github.com/awslabs/goformation/cloudformation"
)

// ErrDuplicateLogicalID is thrown when two resources are registered under
// the same logical ID within one stack.
var ErrDuplicateLogicalID = errors.New("logical ID already in use")

// Resource is a single declarative CloudFormation resource record. It is
// created once at registration time and never mutated afterwards.
type Resource struct {
	Type       string      `json:"Type"`
	Properties interface{} `json:"Properties,omitempty"`
	DependsOn  []string    `json:"DependsOn,omitempty"`
}

// AWSCloudFormationType returns the resource's CloudFormation type,
// satisfying goformation's cloudformation.Resource interface so records
// can be placed in a template's resource map.
func (r Resource) AWSCloudFormationType() string {
	return r.Type
}

// Stack collects resource records and renders them as a CloudFormation
// template. Registration order is preserved for stable output.
type Stack struct {
	name        string
	description string
	env         Env
	order       []string
	resources   map[string]Resource
}

// New creates an empty stack deploying into the given environment.
func New(name string, env Env) *Stack {
	return &Stack{
		name:      name,
		env:       env,
		resources: map[string]Resource{},
	}
}

// Name returns the stack name.
func (s *Stack) Name() string {
	return s.name
}

// Env returns the environment the stack deploys into.
func (s *Stack) Env() Env {
	return s.env
}

// SetDescription sets the template description emitted by Template.
func (s *Stack) SetDescription(description string) {
	s.description = description
}

// AddResource registers a resource record under a logical ID. Logical IDs
// must be unique within the stack.
func (s *Stack) AddResource(logicalID string, res Resource) error {
	if logicalID == "" {
		return fmt.Errorf("cannot register a resource with an empty logical ID")
	}
	if _, found := s.resources[logicalID]; found {
		return fmt.Errorf("cannot register %q: %w", logicalID, ErrDuplicateLogicalID)
	}
	s.resources[logicalID] = res
	s.order = append(s.order, logicalID)
	return nil
}

// Resource returns the record registered under a logical ID.
func (s *Stack) Resource(logicalID string) (Resource, bool) {
	res, found := s.resources[logicalID]
	return res, found
}

// LogicalIDs returns the registered logical IDs in registration order.
func (s *Stack) LogicalIDs() []string {
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids
}

// ComposeArn builds an ARN for a resource in this stack's environment.
func (s *Stack) ComposeArn(service, resourceType, resourceName string) string {
	return s.env.ComposeArn(service, resourceType, resourceName)
}

var physicalNameInvalidChars = regexp.MustCompile(`[^A-Za-z0-9_]`)

// PhysicalName derives a deterministic physical name for a resource that
// was not given an explicit one. The name is built from the stack name and
// the logical ID, restricted to [A-Za-z0-9_], and suffixed with a short
// hash so renaming the stack never collides with an existing resource.
func (s *Stack) PhysicalName(logicalID string) string {
	h := fnv.New32a()
	h.Write([]byte(s.name + "/" + logicalID))

	base := physicalNameInvalidChars.ReplaceAllString(s.name+logicalID, "")
	// IoT rule names and most physical IDs cap out at 128 characters
	if len(base) > 120 {
		base = base[:120]
	}
	return fmt.Sprintf("%s%08x", base, h.Sum32())
}

// Template renders the registered resources as a CloudFormation template.
func (s *Stack) Template() *cloudformation.Template {
	template := cloudformation.NewTemplate()
	template.Description = s.description
	for _, id := range s.order {
		template.Resources[id] = s.resources[id]
	}
	return template
}
