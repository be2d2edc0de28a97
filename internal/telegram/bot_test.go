package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avtoline/showroom-bot/internal/catalog"
	"github.com/avtoline/showroom-bot/internal/dialog"
	"github.com/avtoline/showroom-bot/internal/session"
	"github.com/avtoline/showroom-bot/pkg/logging"
)

func testBot(t *testing.T) *Bot {
	t.Helper()
	cat, err := catalog.New(catalog.Document{
		Vehicles:       map[string]catalog.Vehicle{"Лада Веста": {Price: 1000000, Categories: []string{"седан"}}},
		FailurePhrases: []string{"Не понял вас."},
	})
	require.NoError(t, err)
	engine, err := dialog.New(dialog.Config{Catalog: cat})
	require.NoError(t, err)
	return &Bot{
		engine:       engine,
		store:        session.NewMemoryStore(),
		logger:       logging.Default(),
		startMessage: "Здравствуйте! Я помогу подобрать автомобиль.",
		helpMessage:  "Напишите, какая машина вас интересует.",
	}
}

func TestHandleCommandStart(t *testing.T) {
	b := testBot(t)
	sc := session.NewContext()

	answer := b.handleCommand("start", sc)
	assert.Equal(t, b.startMessage, answer)
	assert.Equal(t, dialog.IntentHello, sc.LastIntent)
	assert.Equal(t, b.startMessage, sc.LastReply)
}

func TestHandleCommandHelp(t *testing.T) {
	b := testBot(t)
	sc := session.NewContext()

	answer := b.handleCommand("help", sc)
	assert.Equal(t, b.helpMessage, answer)
	assert.Equal(t, session.IntentHelp, sc.LastIntent)
}

func TestHandleCommandStats(t *testing.T) {
	b := testBot(t)
	sc := session.NewContext()
	sc.Stats = session.Stats{Intent: 3, Retrieved: 1, Failure: 2}

	answer := b.handleCommand("stats", sc)
	assert.Contains(t, answer, "Обработано намерений: 3")
	assert.Contains(t, answer, "Ответов из диалогов: 1")
	assert.Contains(t, answer, "Неудачных запросов: 2")
}

func TestHandleCommandUnknown(t *testing.T) {
	b := testBot(t)
	answer := b.handleCommand("frobnicate", session.NewContext())
	assert.Equal(t, b.helpMessage, answer)
}
