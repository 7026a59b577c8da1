package lesson

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/wortschatz/internal/provider"
)

const twoTurns = `{"conversation":[
	{"speaker":"A","textDe":"Griaß di!","ttsText":"Grüß dich!","textTr":"Hallo!"},
	{"speaker":"B","textDe":"Servus!","textTr":"Hallo!"}]}`

func TestConversation_RecordsLedgerOnFetchAndCacheHit(t *testing.T) {
	f := newFixture(t, "key", reply(twoTurns))
	ctx := context.Background()
	p := ConvParams{Level: "A1", Topic: "Essen", Length: Short, Austrian: true}

	turns, err := f.svc.Conversation(ctx, p)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "Grüß dich!", turns[0].SpeechText())
	assert.Equal(t, "Servus!", turns[1].SpeechText())

	recs := f.ledger.List(nil)
	require.Len(t, recs, 1)
	assert.Equal(t, "conv_A1_Essen_short_de_true", recs[0].ID)
	assert.True(t, recs[0].Austrian)
	assert.Equal(t, int64(1_700_000_000_000), recs[0].Timestamp)

	// Second open is a cache hit and does not duplicate the record.
	_, err = f.svc.Conversation(ctx, p)
	require.NoError(t, err)
	assert.Len(t, f.gen.Requests(), 1)
	assert.Equal(t, 1, f.ledger.Len())
}

func TestConversation_CacheHitOnColdStartRecordsLedger(t *testing.T) {
	f := newFixture(t, "", nil)
	p := ConvParams{Level: "B1", Topic: "Reisen", Length: Long}
	f.store.Put(p.Fingerprint("de"), []Turn{{Speaker: "A", TextDe: "Hallo"}})

	_, err := f.svc.Conversation(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, 1, f.ledger.Len())
}

func TestConversation_DialectPrompt(t *testing.T) {
	f := newFixture(t, "key", reply(twoTurns))
	_, err := f.svc.Conversation(context.Background(), ConvParams{Level: "A2", Topic: "Wetter", Length: Medium, Austrian: true})
	require.NoError(t, err)
	req := f.gen.Requests()[0]
	assert.Contains(t, req.Prompt, "Austrian")
	assert.Contains(t, req.Prompt, "about 10 turns")
	assert.InDelta(t, 0.3, req.Temperature, 1e-6)
}

func TestExtendConversation_AppendsAndOverwrites(t *testing.T) {
	f := newFixture(t, "key", reply(`{"conversation":[{"speaker":"A","textDe":"Ich möchte Brot.","textTr":"..."},{"speaker":"B","textDe":"Gerne!","textTr":"..."}]}`))
	p := ConvParams{Level: "A1", Topic: "Bäckerei", Length: Short}
	existing := []Turn{{Speaker: "A", TextDe: "Guten Tag."}, {Speaker: "B", TextDe: "Hallo!"}}
	f.store.Put(p.Fingerprint("de"), existing)

	updated, err := f.svc.ExtendConversation(context.Background(), p, existing, "ich möchte brot")
	require.NoError(t, err)
	require.Len(t, updated, 4)
	assert.Equal(t, "Gerne!", updated[3].TextDe)

	var cached []Turn
	require.True(t, f.store.GetInto(p.Fingerprint("de"), &cached))
	assert.Equal(t, updated, cached)

	req := f.gen.Requests()[0]
	assert.Contains(t, req.Prompt, "ich möchte brot")
	assert.InDelta(t, 0.4, req.Temperature, 1e-6)
}

func TestExtendConversation_RequiresInputAndKey(t *testing.T) {
	f := newFixture(t, "", nil)
	p := ConvParams{Level: "A1", Topic: "Bäckerei", Length: Short}
	_, err := f.svc.ExtendConversation(context.Background(), p, nil, "  ")
	assert.ErrorIs(t, err, ErrEmptyInput)
	_, err = f.svc.ExtendConversation(context.Background(), p, nil, "Hallo")
	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestKeywords_SendsTextAsSeparatePart(t *testing.T) {
	f := newFixture(t, "key", reply(`{"keywords":[{"word":"das Brot","meaning":"bread"}]}`))
	kw, err := f.svc.Keywords(context.Background(), ConversationText([]Turn{{TextDe: "Ich kaufe Brot."}, {TextDe: "Gerne."}}))
	require.NoError(t, err)
	assert.Equal(t, []Keyword{{Word: "das Brot", Meaning: "bread"}}, kw)

	req := f.gen.Requests()[0]
	assert.Equal(t, []string{"Ich kaufe Brot. Gerne."}, req.Parts)
	assert.Equal(t, 0, f.store.Len(), "keywords are not cached")
}

func TestChat(t *testing.T) {
	f := newFixture(t, "key", nil)
	var got provider.ChatRequest
	f.gen.ChatFunc = func(_ context.Context, req provider.ChatRequest) (string, error) {
		got = req
		return "", nil
	}

	answer, err := f.svc.Chat(context.Background(), "Ich gehe.", "I go.",
		[]ChatMessage{{Role: "user", Text: "Warum?"}, {Role: "model", Text: "Weil..."}}, "Und jetzt?")
	require.NoError(t, err)
	assert.Equal(t, "Entschuldigung, ich konnte nicht antworten.", answer)
	assert.Contains(t, got.System, "Ich gehe.")
	assert.Equal(t, []provider.Message{{Role: provider.RoleUser, Text: "Warum?"}, {Role: provider.RoleModel, Text: "Weil..."}}, got.History)
	assert.Equal(t, "Und jetzt?", got.Message)
}

func TestConvParams_Fingerprint(t *testing.T) {
	p := ConvParams{Level: "C1", Topic: "Politik", Length: Medium, Austrian: false}
	assert.Equal(t, "conv_C1_Politik_medium_ar_false", p.Fingerprint("ar"))
}

func TestNounHistory_SortsGermanAlphabetically(t *testing.T) {
	f := newFixture(t, "key", nil)
	h := LoadNounHistory(f.kv, nil)
	for _, w := range []string{"Zug", "Ärger", "Apfel", "Baum"} {
		h.Save(Noun{Word: w, Article: Der})
	}
	h.Save(Noun{Word: "apfel", Article: Der, Translation: "apple"})

	var words []string
	for _, n := range h.List() {
		words = append(words, n.Word)
	}
	assert.Equal(t, []string{"apfel", "Ärger", "Baum", "Zug"}, words)

	reloaded := LoadNounHistory(f.kv, nil)
	n, ok := reloaded.Find("APFEL")
	require.True(t, ok)
	assert.Equal(t, "apple", n.Translation)
}
