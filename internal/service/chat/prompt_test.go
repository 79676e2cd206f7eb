package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/zyra-api/internal/model"
)

func TestBuildSystemPrompt(t *testing.T) {
	salon := &model.Tenant{Name: "Glow Studio"}
	services := []*model.Service{
		{Name: "Haircut", Price: 25, Duration: 30, Description: "Wash, cut and finish"},
		{Name: "Beard Trim", Price: 12.5, Duration: 15},
	}

	t.Run("tenant and catalog aware", func(t *testing.T) {
		out, err := BuildSystemPrompt(promptCfg, salon, services)
		require.NoError(t, err)
		assert.Contains(t, out, "You are Zyra")
		assert.Contains(t, out, "for Glow Studio")
		assert.Contains(t, out, "- Haircut (£25.00, 30 min): Wash, cut and finish\n- Beard Trim (£12.50, 15 min)\n")
		assert.Contains(t, out, `"notes": ""`)
	})

	t.Run("generic", func(t *testing.T) {
		out, err := BuildSystemPrompt(PromptConfig{}, salon, services)
		require.NoError(t, err)
		assert.Contains(t, out, "You are Zyra")
		assert.Contains(t, out, "used by service-based businesses")
		assert.NotContains(t, out, "Glow Studio")
		assert.NotContains(t, out, "Services currently offered")
	})

	t.Run("empty catalog", func(t *testing.T) {
		out, err := BuildSystemPrompt(promptCfg, salon, nil)
		require.NoError(t, err)
		assert.NotContains(t, out, "Services currently offered")
	})
}
