package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_generation "github.com/chikoo0907/Legal-Aid-sub000/internal/mocks/generation"
	mock_retrieval "github.com/chikoo0907/Legal-Aid-sub000/internal/mocks/retrieval"
	"github.com/chikoo0907/Legal-Aid-sub000/internal/retrieval"
)

func newTestService(t *testing.T) (*Service, *mock_retrieval.MockRetriever, *mock_generation.MockClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	retriever := mock_retrieval.NewMockRetriever(ctrl)
	backend := mock_generation.NewMockClient(ctrl)
	return NewService(retriever, backend, 5), retriever, backend
}

func firResult() retrieval.Result {
	distance := 0.2
	return retrieval.Result{
		Sources: []retrieval.Source{
			{ID: "police-fir:step-1", Text: "Visit the police station with jurisdiction.", Distance: &distance},
		},
		Context:    "Visit the police station with jurisdiction.",
		Confidence: 0.83,
	}
}

func TestServiceAsk(t *testing.T) {
	t.Parallel()

	t.Run("greeting returns the canned introduction without retrieval", func(t *testing.T) {
		t.Parallel()
		service, _, _ := newTestService(t)

		answer := service.Ask(context.Background(), "hello", "hi")
		assert.Equal(t, cannedResponse(kindGreeting, "hi"), answer.Text)
		assert.Equal(t, 1.0, answer.Confidence)
		assert.Empty(t, answer.Sources)
		assert.Equal(t, "greeting", answer.Metadata["type"])
		assert.Equal(t, "hi", answer.Metadata["language"])
	})

	t.Run("non-legal question without context gets redirected", func(t *testing.T) {
		t.Parallel()
		service, retriever, _ := newTestService(t)
		retriever.EXPECT().
			Query(gomock.Any(), "What's the weather in Pune?", 5, map[string]any{"language": "en"}).
			Return(retrieval.Result{Confidence: 0.5})

		answer := service.Ask(context.Background(), "What's the weather in Pune?", "en")
		assert.Equal(t, cannedResponse(kindNonLegal, "en"), answer.Text)
		assert.Equal(t, 0.5, answer.Confidence)
		assert.Equal(t, "nonLegal", answer.Metadata["type"])
	})

	t.Run("empty context yields the no-context response", func(t *testing.T) {
		t.Parallel()
		service, retriever, _ := newTestService(t)
		retriever.EXPECT().
			Query(gomock.Any(), gomock.Any(), 5, gomock.Any()).
			Return(retrieval.Result{Confidence: 0.5})

		answer := service.Ask(context.Background(), "How do I appeal a property tax order?", "ta")
		assert.Equal(t, cannedResponse(kindNoContext, "ta"), answer.Text)
		assert.Equal(t, 0.5, answer.Confidence)
		assert.Equal(t, "noContext", answer.Metadata["type"])
	})

	t.Run("grounded answer flows through generation and shaping", func(t *testing.T) {
		t.Parallel()
		service, retriever, backend := newTestService(t)
		rag := firResult()
		retriever.EXPECT().
			Query(gomock.Any(), "How do I file an FIR?", 5, map[string]any{"language": "hi"}).
			Return(rag)
		backend.EXPECT().
			Generate(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, prompt string) (string, error) {
				assert.Contains(t, prompt, rag.Context)
				assert.Contains(t, prompt, "How do I file an FIR?")
				assert.Contains(t, prompt, "Hindi")
				return "Go to the police station. Give a written complaint. Ask for a free FIR copy.", nil
			})

		answer := service.Ask(context.Background(), "How do I file an FIR?", "hi")
		require.NotEmpty(t, answer.Text)
		lines := strings.Split(answer.Text, "\n")
		assert.LessOrEqual(t, len(lines), 10)
		assert.Equal(t, "Go to the police station.", lines[0])
		assert.Equal(t, rag.Sources, answer.Sources)
		assert.Equal(t, 0.83, answer.Confidence)
		assert.Nil(t, answer.Metadata["type"])
	})

	t.Run("generation failure derives the answer from context", func(t *testing.T) {
		t.Parallel()
		service, retriever, backend := newTestService(t)
		rag := firResult()
		retriever.EXPECT().
			Query(gomock.Any(), gomock.Any(), 5, gomock.Any()).
			Return(rag)
		backend.EXPECT().
			Generate(gomock.Any(), gomock.Any()).
			Return("", errors.New("all generation models failed"))

		answer := service.Ask(context.Background(), "How do I file an FIR?", "en")
		assert.Equal(t, "Visit the police station with jurisdiction.", answer.Text)
		assert.Equal(t, "fallback", answer.Metadata["type"])
		assert.Equal(t, rag.Sources, answer.Sources)
		assert.Equal(t, 0.83, answer.Confidence)
	})

	t.Run("unsupported language falls back to english", func(t *testing.T) {
		t.Parallel()
		service, _, _ := newTestService(t)

		answer := service.Ask(context.Background(), "hello", "fr")
		assert.Equal(t, cannedResponse(kindGreeting, "en"), answer.Text)
		assert.Equal(t, "en", answer.Metadata["language"])
	})

	t.Run("matched context keeps a keyword question legal", func(t *testing.T) {
		t.Parallel()
		service, retriever, backend := newTestService(t)
		rag := retrieval.Result{
			Sources:    []retrieval.Source{{ID: "tenancy:1", Text: "Tenant rights under the Rent Control Act."}},
			Context:    "Tenant rights under the Rent Control Act.",
			Confidence: 0.7,
		}
		retriever.EXPECT().
			Query(gomock.Any(), gomock.Any(), 5, gomock.Any()).
			Return(rag)
		backend.EXPECT().
			Generate(gomock.Any(), gomock.Any()).
			Return("You can keep practicing music within reasonable hours.", nil)

		answer := service.Ask(context.Background(), "Can my landlord evict me over music practice?", "en")
		assert.NotEqual(t, cannedResponse(kindNonLegal, "en"), answer.Text)
		assert.Equal(t, rag.Sources, answer.Sources)
	})
}

func TestServiceSearch(t *testing.T) {
	t.Parallel()
	service, retriever, _ := newTestService(t)
	rag := firResult()
	retriever.EXPECT().
		Query(gomock.Any(), "FIR procedure", 5, nil).
		Return(rag)

	got := service.Search(context.Background(), "FIR procedure")
	assert.Equal(t, rag, got)
}
