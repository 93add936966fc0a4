package iotrule_test

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/awslabs/aws-iot-rules/iotrule"
	"github.com/awslabs/aws-iot-rules/stack"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func newTestStack() *stack.Stack {
	return stack.New("RulesStack", stack.Env{Region: "us-east-2", Account: "123456789012"})
}

// payloadJSON returns the emitted TopicRulePayload of a registered rule as
// a generic map, the way CloudFormation would receive it.
func payloadJSON(s *stack.Stack, logicalID string) map[string]interface{} {
	res, found := s.Resource(logicalID)
	Expect(found).To(BeTrue())

	data, err := json.Marshal(res.Properties)
	Expect(err).To(BeNil())

	properties := map[string]interface{}{}
	Expect(json.Unmarshal(data, &properties)).To(BeNil())

	payload, ok := properties["TopicRulePayload"].(map[string]interface{})
	Expect(ok).To(BeTrue())
	return payload
}

var _ = Describe("TopicRule", func() {

	Describe("construction", func() {

		Context("with an explicit rule name", func() {

			It("exposes the name and an ARN ending in rule/<name>", func() {
				s := newTestStack()
				rule, err := iotrule.New(s, "MyTopicRule", iotrule.Props{
					RuleName: "MyRule",
					SQL:      iotrule.SQLVersion20160323("SELECT * FROM 'topic/subtopic'"),
				})
				Expect(err).To(BeNil())
				Expect(rule.Name()).To(Equal("MyRule"))
				Expect(rule.Arn()).To(Equal("arn:aws:iot:us-east-2:123456789012:rule/MyRule"))
			})

			It("registers exactly one AWS::IoT::TopicRule record", func() {
				s := newTestStack()
				_, err := iotrule.New(s, "MyTopicRule", iotrule.Props{
					RuleName: "MyRule",
					SQL:      iotrule.SQLVersion20160323("SELECT * FROM 'topic'"),
				})
				Expect(err).To(BeNil())
				Expect(s.LogicalIDs()).To(Equal([]string{"MyTopicRule"}))

				res, _ := s.Resource("MyTopicRule")
				Expect(res.Type).To(Equal("AWS::IoT::TopicRule"))
			})

			It("rejects names AWS IoT would refuse", func() {
				s := newTestStack()
				_, err := iotrule.New(s, "MyTopicRule", iotrule.Props{
					RuleName: "my-rule",
					SQL:      iotrule.SQLVersion20160323("SELECT * FROM 'topic'"),
				})
				Expect(err).ToNot(BeNil())
				Expect(err.Error()).To(ContainSubstring("rule name"))
			})
		})

		Context("without an explicit rule name", func() {

			It("derives a non-empty name whose ARN carries it as the trailing segment", func() {
				s := newTestStack()
				rule, err := iotrule.New(s, "MyTopicRule", iotrule.Props{
					SQL: iotrule.SQLVersion20160323("SELECT * FROM 'topic'"),
				})
				Expect(err).To(BeNil())
				Expect(rule.Name()).ToNot(BeEmpty())
				Expect(strings.HasSuffix(rule.Arn(), "rule/"+rule.Name())).To(BeTrue())
			})

			It("derives the same name for the same stack and logical ID", func() {
				one, err := iotrule.New(newTestStack(), "MyTopicRule", iotrule.Props{
					SQL: iotrule.SQLVersion20160323("SELECT * FROM 'topic'"),
				})
				Expect(err).To(BeNil())

				two, err := iotrule.New(newTestStack(), "MyTopicRule", iotrule.Props{
					SQL: iotrule.SQLVersion20160323("SELECT * FROM 'topic'"),
				})
				Expect(err).To(BeNil())
				Expect(one.Name()).To(Equal(two.Name()))
			})
		})

		Context("emitted payload", func() {

			It("always carries an empty Actions list", func() {
				s := newTestStack()
				_, err := iotrule.New(s, "MyTopicRule", iotrule.Props{
					SQL: iotrule.SQLVersion20160323("SELECT * FROM 'topic'"),
				})
				Expect(err).To(BeNil())

				payload := payloadJSON(s, "MyTopicRule")
				Expect(payload).To(HaveKey("Actions"))
				Expect(payload["Actions"]).To(BeEmpty())
			})

			It("never omits the SQL statement or engine version", func() {
				s := newTestStack()
				_, err := iotrule.New(s, "MyTopicRule", iotrule.Props{
					SQL: iotrule.SQLVersion20151008("SELECT * FROM 'topic'"),
				})
				Expect(err).To(BeNil())

				payload := payloadJSON(s, "MyTopicRule")
				Expect(payload["Sql"]).To(Equal("SELECT * FROM 'topic'"))
				Expect(payload["AwsIotSqlVersion"]).To(Equal("2015-10-08"))
			})

			It("emits RuleDisabled only when Enabled is set", func() {
				s := newTestStack()
				_, err := iotrule.New(s, "DefaultRule", iotrule.Props{
					SQL: iotrule.SQLVersion20160323("SELECT * FROM 'topic'"),
				})
				Expect(err).To(BeNil())
				Expect(payloadJSON(s, "DefaultRule")).ToNot(HaveKey("RuleDisabled"))

				disabled := false
				_, err = iotrule.New(s, "DisabledRule", iotrule.Props{
					RuleName: "DisabledRule",
					Enabled:  &disabled,
					SQL:      iotrule.SQLVersion20160323("SELECT * FROM 'topic'"),
				})
				Expect(err).To(BeNil())
				Expect(payloadJSON(s, "DisabledRule")).To(HaveKeyWithValue("RuleDisabled", true))
			})

			It("carries the description when one is given", func() {
				s := newTestStack()
				_, err := iotrule.New(s, "MyTopicRule", iotrule.Props{
					Description: "forwards telemetry",
					SQL:         iotrule.SQLVersion20160323("SELECT * FROM 'topic'"),
				})
				Expect(err).To(BeNil())
				Expect(payloadJSON(s, "MyTopicRule")).To(HaveKeyWithValue("Description", "forwards telemetry"))
			})
		})

		Context("with invalid input", func() {

			It("requires a SQL configuration", func() {
				_, err := iotrule.New(newTestStack(), "MyTopicRule", iotrule.Props{})
				Expect(err).ToNot(BeNil())
				Expect(err.Error()).To(ContainSubstring("SQL is required"))
			})

			It("propagates an empty SQL statement", func() {
				_, err := iotrule.New(newTestStack(), "MyTopicRule", iotrule.Props{
					SQL: iotrule.SQLVersion20160323(""),
				})
				Expect(errors.Is(err, iotrule.ErrEmptySQL)).To(BeTrue())
			})

			It("propagates duplicate logical IDs", func() {
				s := newTestStack()
				_, err := iotrule.New(s, "MyTopicRule", iotrule.Props{
					SQL: iotrule.SQLVersion20160323("SELECT * FROM 'topic'"),
				})
				Expect(err).To(BeNil())

				_, err = iotrule.New(s, "MyTopicRule", iotrule.Props{
					SQL: iotrule.SQLVersion20160323("SELECT * FROM 'topic'"),
				})
				Expect(errors.Is(err, stack.ErrDuplicateLogicalID)).To(BeTrue())
			})
		})
	})

	Describe("importing by ARN", func() {

		It("round-trips a valid rule ARN", func() {
			rule, err := iotrule.FromRuleArn("arn:aws:iot:us-east-2:123456789012:rule/MyRule")
			Expect(err).To(BeNil())
			Expect(rule.Arn()).To(Equal("arn:aws:iot:us-east-2:123456789012:rule/MyRule"))
			Expect(rule.Name()).To(Equal("MyRule"))
		})

		It("fails with a ValidationError when the resource name is missing", func() {
			_, err := iotrule.FromRuleArn("arn:aws:iot:us-east-2:123456789012:rule")
			Expect(err).To(MatchError("missing resource name in ARN"))

			var validationErr *stack.ValidationError
			Expect(errors.As(err, &validationErr)).To(BeTrue())
		})
	})
})
