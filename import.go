package main

import (
	"fmt"
	"os"

	"github.com/codegangsta/cli"
	"github.com/fatih/color"

	"github.com/awslabs/aws-iot-rules/iotrule"
)

func importRule(c *cli.Context) {

	arn := c.Args().First()
	if arn == "" {
		fmt.Fprintf(os.Stderr, "Usage: iot-rules import <rule-arn>\n")
		os.Exit(1)
	}

	rule, err := iotrule.FromRuleArn(arn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	color.New(color.FgCyan).Printf("Name: ")
	fmt.Printf("%s\n", rule.Name())
	color.New(color.FgCyan).Printf("ARN:  ")
	fmt.Printf("%s\n", rule.Arn())

}
