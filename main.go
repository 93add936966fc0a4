package main

import (
	"fmt"
	"os"

	"github.com/codegangsta/cli"
	"github.com/fatih/color"
)

const LOCAL_BUILD_VERSION = "snapshot"

// `version` property will be replaced by the build upon release
var version = LOCAL_BUILD_VERSION

func main() {

	color.Unset()

	if version != LOCAL_BUILD_VERSION {
		// Enable version checking only on public releases

		v, err := checkVersion()
		if err == nil && !v.IsUpToDate {
			fmt.Fprintf(os.Stderr, "A newer version of the AWS IoT Rules CLI is available!\n")
			fmt.Fprintf(os.Stderr, "Your version:   %s\n", version)
			fmt.Fprintf(os.Stderr, "Latest version: %s\n", v.LatestVersion.Version)
		}
	}

	app := cli.NewApp()

	app.Name = "iot-rules"
	app.Version = version
	app.Usage = `
     AWS IoT Topic Rules CLI

     Define AWS IoT Topic Rules declaratively, synthesize them into AWS CloudFormation templates, and validate, preview, deploy or inspect the result. A topic rule binds a SQL filter to messages published on MQTT topics; this tool only produces the declarative description - rules are evaluated by AWS IoT after deployment.
	`
	app.EnableBashCompletion = true

	configFlag := cli.StringFlag{
		Name:   "config, c",
		Value:  "iot-rules.json",
		Usage:  "Rules configuration file",
		EnvVar: "IOT_RULES_CONFIG_FILE",
	}
	regionFlag := cli.StringFlag{
		Name:  "region",
		Usage: "Optional. AWS region to compose ARNs with. Overrides AWS_REGION and the config file.",
	}
	accountFlag := cli.StringFlag{
		Name:  "account",
		Usage: "Optional. AWS account ID to compose ARNs with. Overrides AWS_ACCOUNT_ID and the config file.",
	}

	app.Commands = []cli.Command{
		cli.Command{
			Name:   "synth",
			Action: synth,
			Usage: "Synthesizes the rules configuration into a CloudFormation template. " +
				"Writes JSON to stdout by default; use --format yaml for YAML and --output to write to a file instead.",
			Flags: []cli.Flag{
				configFlag,
				regionFlag,
				accountFlag,
				cli.StringFlag{
					Name:  "format, f",
					Value: "json",
					Usage: "Template output format (json or yaml)",
				},
				cli.StringFlag{
					Name:  "output, o",
					Usage: "Optional. Write the template to this file instead of stdout.",
				},
			},
		},

		cli.Command{
			Name:   "validate",
			Action: validate,
			Usage: "Validates a CloudFormation template. If valid, will print a summary of the AWS::IoT::TopicRule resources " +
				"found within the template. If the template is invalid, returns a non-zero exit code.",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:   "template, t",
					Value:  "template.json",
					Usage:  "CloudFormation template file",
					EnvVar: "IOT_RULES_TEMPLATE_FILE",
				},
			},
		},

		cli.Command{
			Name:      "import",
			Action:    importRule,
			Usage:     "Resolves the identity (ARN and name) of an existing topic rule from its ARN, without creating anything.",
			ArgsUsage: "<rule-arn>",
		},

		cli.Command{
			Name:      "fetch",
			Action:    fetch,
			Usage:     "Fetches a deployed topic rule from AWS IoT and prints its identity and SQL statement.",
			ArgsUsage: "<rule-name>",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "profile",
					Usage: "Optional. Specify which AWS credentials profile to use.",
				},
				regionFlag,
			},
		},

		cli.Command{
			// Synthesizes first, then hands off to 'aws cloudformation deploy'
			Name:   "deploy",
			Action: deploy,
			Usage: "Synthesizes the rules configuration and deploys it. This is a wrapper around 'aws cloudformation deploy'; " +
				"any additional arguments are passed through to the AWS CLI unchanged.",
			Flags: []cli.Flag{
				configFlag,
				regionFlag,
				accountFlag,
			},
		},

		cli.Command{
			Name:   "serve",
			Action: serve,
			Usage: "Hosts a local HTTP preview of the synthesized stack. GET /template returns the CloudFormation template, " +
				"GET /rules lists the rules and GET /rules/{id} returns a single resource record.",
			Flags: []cli.Flag{
				configFlag,
				regionFlag,
				accountFlag,
				cli.StringFlag{
					Name:  "port, p",
					Value: "3000",
					Usage: "Local port number to listen on",
				},
				cli.StringFlag{
					Name:  "host",
					Value: "127.0.0.1",
					Usage: "Local hostname or IP address to bind to",
				},
			},
		},
	}

	app.Run(os.Args)

}
