package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSES struct {
	inputs []*ses.SendEmailInput
	err    error
}

func (m *mockSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.inputs = append(m.inputs, params)
	if m.err != nil {
		return nil, m.err
	}
	return &ses.SendEmailOutput{}, nil
}

type mockSNS struct {
	inputs []*sns.PublishInput
	err    error
}

func (m *mockSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.inputs = append(m.inputs, params)
	if m.err != nil {
		return nil, m.err
	}
	return &sns.PublishOutput{}, nil
}

func TestSendEmail(t *testing.T) {
	sesMock := &mockSES{}
	n := &Notifier{sesClient: sesMock, sender: "alerts@kejani.ke"}

	err := n.SendEmail(context.Background(), "landlord@example.com", "New inquiry", "body text")
	require.NoError(t, err)

	require.Len(t, sesMock.inputs, 1)
	input := sesMock.inputs[0]
	assert.Equal(t, "alerts@kejani.ke", *input.Source)
	assert.Equal(t, []string{"landlord@example.com"}, input.Destination.ToAddresses)
	assert.Equal(t, "New inquiry", *input.Message.Subject.Data)
	assert.Equal(t, "body text", *input.Message.Body.Text.Data)
}

func TestSendEmailWrapsError(t *testing.T) {
	n := &Notifier{sesClient: &mockSES{err: errors.New("throttled")}, sender: "alerts@kejani.ke"}

	err := n.SendEmail(context.Background(), "landlord@example.com", "s", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "landlord@example.com")
}

func TestSendSMS(t *testing.T) {
	snsMock := &mockSNS{}
	n := &Notifier{snsClient: snsMock}

	err := n.SendSMS(context.Background(), "+254712345678", "Kejani: payment received")
	require.NoError(t, err)

	require.Len(t, snsMock.inputs, 1)
	assert.Equal(t, "+254712345678", *snsMock.inputs[0].PhoneNumber)
	assert.Equal(t, "Kejani: payment received", *snsMock.inputs[0].Message)
}
