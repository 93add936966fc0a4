package main

import (
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/iot"
	"github.com/codegangsta/cli"
	"github.com/fatih/color"
)

// fetch looks up a deployed topic rule through the AWS IoT API and prints
// the same identity the library derives at construction time.
func fetch(c *cli.Context) {

	name := c.Args().First()
	if name == "" {
		fmt.Fprintf(os.Stderr, "Usage: iot-rules fetch <rule-name>\n")
		os.Exit(1)
	}

	options := session.Options{
		SharedConfigState: session.SharedConfigEnable,
		Profile:           c.String("profile"),
	}
	if c.String("region") != "" {
		options.Config = aws.Config{Region: aws.String(c.String("region"))}
	}

	sess := session.Must(session.NewSessionWithOptions(options))
	svc := iot.New(sess)

	rule, err := svc.GetTopicRule(&iot.GetTopicRuleInput{
		RuleName: aws.String(name),
	})
	if err != nil {
		log.Fatalf("Failed to fetch topic rule %s: %s\n", name, err)
	}

	color.New(color.FgCyan).Printf("Name: ")
	fmt.Printf("%s\n", aws.StringValue(rule.Rule.RuleName))
	color.New(color.FgCyan).Printf("ARN:  ")
	fmt.Printf("%s\n", aws.StringValue(rule.RuleArn))
	color.New(color.FgCyan).Printf("SQL:  ")
	fmt.Printf("%s\n", aws.StringValue(rule.Rule.Sql))
	if version := aws.StringValue(rule.Rule.AwsIotSqlVersion); version != "" {
		color.New(color.FgCyan).Printf("SQL version: ")
		fmt.Printf("%s\n", version)
	}

}
