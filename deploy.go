package main

import (
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/codegangsta/cli"
)

// deploy synthesizes the configured stack to a temporary template file and
// hands it to `aws cloudformation deploy`. Any arguments after the
// iot-rules flags are passed through to the AWS CLI unchanged.
func deploy(c *cli.Context) {

	s, config, err := loadStack(c)
	if err != nil {
		log.Fatalf("%s\n", err)
	}

	data, err := s.Template().JSON()
	if err != nil {
		log.Fatalf("Failed to render template: %s\n", err)
	}

	dir, err := os.MkdirTemp("", "iot-rules")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	templateFile := filepath.Join(dir, "template.json")
	if err := os.WriteFile(templateFile, data, 0644); err != nil {
		log.Fatal(err)
	}

	args := []string{
		"cloudformation", "deploy",
		"--template-file", templateFile,
		"--stack-name", config.Stack,
	}
	for _, arg := range c.Args() {
		args = append(args, arg)
	}

	cmd := exec.Command("aws", args...)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		log.Fatal(err)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		log.Fatal(err)
	}

	if err := cmd.Start(); err != nil {
		log.Fatal(err)
	}

	go io.Copy(os.Stderr, stderr)
	go io.Copy(os.Stdout, stdout)

	cmd.Wait()

}
