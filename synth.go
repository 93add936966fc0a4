package main

import (
	"fmt"
	"log"
	"os"

	"github.com/codegangsta/cli"

	"github.com/awslabs/goformation/cloudformation"
)

func synth(c *cli.Context) {

	s, _, err := loadStack(c)
	if err != nil {
		log.Fatalf("%s\n", err)
	}

	data, err := renderTemplate(s.Template(), c.String("format"))
	if err != nil {
		log.Fatalf("%s\n", err)
	}

	if output := c.String("output"); output != "" {
		if err := os.WriteFile(output, data, 0644); err != nil {
			log.Fatalf("Failed to write template to %s: %s\n", output, err)
		}
		log.Printf("Wrote %s", output)
		return
	}

	fmt.Printf("%s\n", data)

}

// renderTemplate serializes a CloudFormation template as JSON or YAML.
func renderTemplate(template *cloudformation.Template, format string) ([]byte, error) {
	switch format {
	case "", "json":
		return template.JSON()
	case "yaml", "yml":
		return template.YAML()
	default:
		return nil, fmt.Errorf("unknown template format %q (expected json or yaml)", format)
	}
}
