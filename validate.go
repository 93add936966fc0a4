package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/awslabs/goformation"
	"github.com/awslabs/goformation/cloudformation"
	"github.com/codegangsta/cli"
)

func validate(c *cli.Context) {

	template, err := goformation.Open(c.String("template"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	names := topicRuleLogicalIDs(template)
	if len(names) == 0 {
		fmt.Fprintf(os.Stderr, "Valid template, but no AWS::IoT::TopicRule resources found\n")
		os.Exit(0)
	}

	fmt.Fprintf(os.Stderr, "Valid! Found %d topic rule(s):\n", len(names))
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %s\n", name)
	}
	os.Exit(0)

}

// topicRuleLogicalIDs returns the logical IDs of all AWS::IoT::TopicRule
// resources in a parsed template, sorted for stable output.
func topicRuleLogicalIDs(template *cloudformation.Template) []string {

	names := []string{}
	for logicalID := range template.GetAllAWSIoTTopicRuleResources() {
		names = append(names, logicalID)
	}

	sort.Strings(names)
	return names

}
