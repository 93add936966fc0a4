package stack_test

import (
	"errors"

	"github.com/awslabs/aws-iot-rules/stack"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("ARN conventions", func() {

	Describe("splitting with the slash resource name convention", func() {

		Context("with a fully qualified rule ARN", func() {

			It("extracts every component", func() {
				components, err := stack.SplitResourceName("arn:aws:iot:us-east-2:123456789012:rule/MyRule")
				Expect(err).To(BeNil())
				Expect(components.Partition).To(Equal("aws"))
				Expect(components.Service).To(Equal("iot"))
				Expect(components.Region).To(Equal("us-east-2"))
				Expect(components.Account).To(Equal("123456789012"))
				Expect(components.ResourceType).To(Equal("rule"))
				Expect(components.ResourceName).To(Equal("MyRule"))
			})

			It("keeps everything after the first slash as the resource name", func() {
				components, err := stack.SplitResourceName("arn:aws:iam::123456789012:role/service-role/MyRole")
				Expect(err).To(BeNil())
				Expect(components.ResourceType).To(Equal("role"))
				Expect(components.ResourceName).To(Equal("service-role/MyRole"))
			})

			It("accepts empty region and account fields", func() {
				components, err := stack.SplitResourceName("arn:aws:iot:::rule/MyRule")
				Expect(err).To(BeNil())
				Expect(components.Region).To(Equal(""))
				Expect(components.Account).To(Equal(""))
				Expect(components.ResourceName).To(Equal("MyRule"))
			})
		})

		Context("with a malformed identifier", func() {

			It("fails when the resource name segment is missing", func() {
				_, err := stack.SplitResourceName("arn:aws:iot:us-east-2:123456789012:rule")
				Expect(err).To(MatchError("missing resource name in ARN"))

				var validationErr *stack.ValidationError
				Expect(errors.As(err, &validationErr)).To(BeTrue())
			})

			It("fails when the separator has nothing after it", func() {
				_, err := stack.SplitResourceName("arn:aws:iot:us-east-2:123456789012:rule/")
				Expect(err).To(MatchError("missing resource name in ARN"))
			})

			It("fails when the input is not an ARN at all", func() {
				_, err := stack.SplitResourceName("definitely-not-an-arn")

				var validationErr *stack.ValidationError
				Expect(errors.As(err, &validationErr)).To(BeTrue())
			})

			It("fails when the prefix is wrong", func() {
				_, err := stack.SplitResourceName("nra:aws:iot:us-east-2:123456789012:rule/MyRule")

				var validationErr *stack.ValidationError
				Expect(errors.As(err, &validationErr)).To(BeTrue())
			})
		})
	})

	Describe("composing", func() {

		It("builds a fully qualified ARN", func() {
			env := stack.Env{Partition: "aws", Region: "us-east-2", Account: "123456789012"}
			arn := env.ComposeArn("iot", "rule", "MyRule")
			Expect(arn).To(Equal("arn:aws:iot:us-east-2:123456789012:rule/MyRule"))
		})

		It("defaults to the aws partition", func() {
			env := stack.Env{Region: "eu-west-1", Account: "123456789012"}
			arn := env.ComposeArn("iot", "rule", "MyRule")
			Expect(arn).To(Equal("arn:aws:iot:eu-west-1:123456789012:rule/MyRule"))
		})

		It("leaves unset fields empty", func() {
			arn := stack.Env{}.ComposeArn("iot", "rule", "MyRule")
			Expect(arn).To(Equal("arn:aws:iot:::rule/MyRule"))
		})

		It("round-trips through splitting", func() {
			env := stack.Env{Region: "us-east-2", Account: "123456789012"}
			arn := env.ComposeArn("iot", "rule", "MyRule")

			components, err := stack.SplitResourceName(arn)
			Expect(err).To(BeNil())
			Expect(components.ResourceName).To(Equal("MyRule"))
			Expect(env.ComposeArn(components.Service, components.ResourceType, components.ResourceName)).To(Equal(arn))
		})
	})
})
