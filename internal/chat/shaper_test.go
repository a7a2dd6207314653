package chat

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostProcess(t *testing.T) {
	t.Parallel()

	t.Run("caps the answer at ten lines", func(t *testing.T) {
		t.Parallel()
		var raw strings.Builder
		for i := 1; i <= 13; i++ {
			fmt.Fprintf(&raw, "Point %d about the procedure.\n", i)
		}

		got := postProcess(raw.String())
		lines := strings.Split(got, "\n")
		assert.Len(t, lines, 10)
		assert.Equal(t, "Point 1 about the procedure.", lines[0])
		assert.Equal(t, "Point 10 about the procedure.", lines[9])
	})

	t.Run("re-segments a paragraph on sentence boundaries", func(t *testing.T) {
		t.Parallel()
		var raw strings.Builder
		for i := 1; i <= 8; i++ {
			fmt.Fprintf(&raw, "Step %d of the process is explained here. ", i)
		}

		got := postProcess(raw.String())
		lines := strings.Split(got, "\n")
		require.Len(t, lines, 8)
		assert.Equal(t, "Step 1 of the process is explained here.", lines[0])
	})

	t.Run("splits long lines to reach the minimum", func(t *testing.T) {
		t.Parallel()
		long := strings.Repeat("go to the local police station and explain the situation clearly ", 5)
		raw := strings.TrimSpace(long) + "\n" + strings.TrimSpace(long) + "\n" + strings.TrimSpace(long)

		got := postProcess(raw)
		lines := strings.Split(got, "\n")
		assert.GreaterOrEqual(t, len(lines), 7)
		assert.LessOrEqual(t, len(lines), 10)
	})

	t.Run("short material stays short without filler", func(t *testing.T) {
		t.Parallel()
		got := postProcess("File the complaint. Keep a copy.")
		assert.Equal(t, "File the complaint.\nKeep a copy.", got)
	})

	t.Run("drops a leading greeting sentence", func(t *testing.T) {
		t.Parallel()
		got := postProcess("Sure, here is what you need! File a written complaint at the police station. Ask for a free copy of the FIR.")
		lines := strings.Split(got, "\n")
		assert.Equal(t, "File a written complaint at the police station.", lines[0])
	})

	t.Run("strips code fences", func(t *testing.T) {
		t.Parallel()
		got := postProcess("```\nFile the complaint.\n```")
		assert.Equal(t, "File the complaint.", got)
	})

	t.Run("handles devanagari sentence terminators", func(t *testing.T) {
		t.Parallel()
		got := postProcess("थाने जाएं। लिखित शिकायत दें। एफआईआर की कॉपी मांगें।")
		lines := strings.Split(got, "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "थाने जाएं।", lines[0])
	})
}

func TestFallbackAnswer(t *testing.T) {
	t.Parallel()

	t.Run("wraps context into at most ten bounded lines", func(t *testing.T) {
		t.Parallel()
		context := strings.Repeat("the applicant must submit the form with supporting documents at the district office ", 40)

		got := fallbackAnswer(context)
		lines := strings.Split(got, "\n")
		assert.LessOrEqual(t, len(lines), 10)
		for _, line := range lines {
			assert.LessOrEqual(t, len([]rune(line)), 110)
			assert.NotEqual(t, "", strings.TrimSpace(line))
		}
	})

	t.Run("short context is a single line", func(t *testing.T) {
		t.Parallel()
		got := fallbackAnswer("Visit   the  police station.")
		assert.Equal(t, "Visit the police station.", got)
	})

	t.Run("empty context", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", fallbackAnswer("   "))
	})
}
