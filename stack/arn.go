package stack

import (
	"fmt"
	"strings"
)

// ValidationError is returned when a resource identifier doesn't conform
// to the ARN grammar this package expects.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ArnComponents holds the individual fields of a parsed ARN. For ARNs
// using the "slash resource name" convention (e.g. iot rules, iam roles),
// ResourceType is the segment before the first '/' and ResourceName is
// everything after it.
type ArnComponents struct {
	Partition    string
	Service      string
	Region       string
	Account      string
	ResourceType string
	ResourceName string
}

// Env describes the target environment a stack deploys into. Region and
// Account may be left empty; composed ARNs then carry empty fields, the
// same way region-less ARNs like S3 bucket ARNs do.
type Env struct {
	Partition string
	Region    string
	Account   string
}

// ComposeArn builds a fully qualified ARN for a resource using the slash
// resource name convention.
func (e Env) ComposeArn(service, resourceType, resourceName string) string {
	partition := e.Partition
	if partition == "" {
		partition = "aws"
	}
	return fmt.Sprintf("arn:%s:%s:%s:%s:%s/%s",
		partition, service, e.Region, e.Account, resourceType, resourceName)
}

// SplitResourceName parses an ARN whose resource field uses the slash
// resource name convention (`type/name`). It returns a *ValidationError
// when the input is not an ARN, or when no resource name follows the
// type separator.
func SplitResourceName(arn string) (ArnComponents, error) {
	parts := strings.SplitN(arn, ":", 6)
	if len(parts) < 6 || parts[0] != "arn" {
		return ArnComponents{}, &ValidationError{
			Message: fmt.Sprintf("malformed ARN: %q", arn),
		}
	}

	resource := parts[5]
	slash := strings.Index(resource, "/")
	if slash < 0 || slash == len(resource)-1 {
		return ArnComponents{}, &ValidationError{
			Message: "missing resource name in ARN",
		}
	}

	return ArnComponents{
		Partition:    parts[1],
		Service:      parts[2],
		Region:       parts[3],
		Account:      parts[4],
		ResourceType: resource[:slash],
		ResourceName: resource[slash+1:],
	}, nil
}
