package report

import (
	"testing"

	"github.com/jenian/credcheck/internal/credentials"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestBuild_Sources(t *testing.T) {
	fields := []credentials.Field{
		{Key: "SLACK_BOT_TOKEN", Value: strPtr("xoxb-1")},
		{Key: "SLACK_SIGNING_SECRET", Value: strPtr("from-env")},
		{Key: "OPENAI_API_KEY", Value: nil},
	}
	fileSource := func(key string) string {
		if key == "SLACK_BOT_TOKEN" {
			return "/work/.env"
		}
		return ""
	}

	result := Build(fields, fileSource)

	assert.Len(t, result.Entries, 3)
	assert.Equal(t, "/work/.env", result.Entries[0].Source)
	assert.Equal(t, SourceEnvironment, result.Entries[1].Source)
	assert.Equal(t, SourceAbsent, result.Entries[2].Source)
	assert.Equal(t, []string{"OPENAI_API_KEY"}, result.Missing())
}

func TestBuild_KeepsOrder(t *testing.T) {
	c := &credentials.Credentials{}
	result := Build(c.Fields(), nil)

	keys := make([]string, 0, len(result.Entries))
	for _, e := range result.Entries {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, credentials.Keys, keys)
	assert.Equal(t, credentials.Keys, result.Missing())
}
