package realtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHub_PublishMatchesTableAndKind(t *testing.T) {
	h := NewHub()

	var got []Event
	sub, err := h.Subscribe(context.Background(), Channel{
		Table: "shop_messages",
		Kinds: []Kind{KindInsert},
	}, func(ev Event) {
		got = append(got, ev)
	})
	assert.NoError(t, err)
	defer sub.Close()

	h.PublishRow("shop_messages", KindInsert, map[string]string{"id": "m1"}, nil)
	h.PublishRow("shop_messages", KindUpdate, map[string]string{"id": "m1"}, nil)
	h.PublishRow("shop_conversations", KindInsert, map[string]string{"id": "c1"}, nil)

	if assert.Equal(t, 1, len(got)) {
		assert.Equal(t, "shop_messages", got[0].Table)
		assert.Equal(t, KindInsert, got[0].Kind)
	}
}

func TestHub_FilterByColumn(t *testing.T) {
	h := NewHub()

	var got []Event
	sub, err := h.Subscribe(context.Background(), Channel{
		Table:  "shop_messages",
		Filter: &Filter{Column: "conversation_id", Equals: "c1"},
	}, func(ev Event) {
		got = append(got, ev)
	})
	assert.NoError(t, err)
	defer sub.Close()

	h.PublishRow("shop_messages", KindInsert, map[string]string{"id": "m1", "conversation_id": "c1"}, nil)
	h.PublishRow("shop_messages", KindInsert, map[string]string{"id": "m2", "conversation_id": "c2"}, nil)

	assert.Equal(t, 1, len(got))
}

func TestHub_FilterMatchesOldRowOnDelete(t *testing.T) {
	h := NewHub()

	var got []Event
	sub, err := h.Subscribe(context.Background(), Channel{
		Table:  "shop_messages",
		Filter: &Filter{Column: "conversation_id", Equals: "c1"},
	}, func(ev Event) {
		got = append(got, ev)
	})
	assert.NoError(t, err)
	defer sub.Close()

	//DELETEはOld側しか埋まらない
	h.PublishRow("shop_messages", KindDelete, nil, map[string]string{"id": "m1", "conversation_id": "c1"})

	if assert.Equal(t, 1, len(got)) {
		assert.Equal(t, KindDelete, got[0].Kind)
	}
}

func TestHub_CloseStopsDelivery(t *testing.T) {
	h := NewHub()

	count := 0
	sub, err := h.Subscribe(context.Background(), Channel{Table: "shop_messages"}, func(Event) {
		count++
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, h.SubscriberCount())

	h.PublishRow("shop_messages", KindInsert, map[string]string{"id": "m1"}, nil)
	assert.Equal(t, 1, count)

	assert.NoError(t, sub.Close())
	assert.Equal(t, 0, h.SubscriberCount())

	h.PublishRow("shop_messages", KindInsert, map[string]string{"id": "m2"}, nil)
	assert.Equal(t, 1, count)
}

func TestChannel_Matches_EmptyKindsMeansAll(t *testing.T) {
	ch := Channel{Table: "shop_conversations"}

	for _, k := range []Kind{KindInsert, KindUpdate, KindDelete} {
		assert.True(t, ch.Matches(Event{Table: "shop_conversations", Kind: k}))
	}
	assert.False(t, ch.Matches(Event{Table: "shop_messages", Kind: KindInsert}))
}
