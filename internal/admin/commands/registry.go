package commands

import "github.com/udisondev/roundmods/internal/admin"

// RegisterAll registers every command into the handler.
func RegisterAll(h *admin.Handler, core ModifierCore, players PlayerManager) {
	h.Register(NewReload(core))
	h.Register(NewListModifiers(core))
	h.Register(NewListActiveModifiers(core))
	h.Register(NewAddModifier(core))
	h.Register(NewToggleModifier(core))
	h.Register(NewAddRandomModifier(core))
	h.Register(NewAddRandomModifiers(core))
	h.Register(NewRemoveModifier(core))
	h.Register(NewRemoveModifiers(core))
	h.Register(NewRandomRounds(core))
	h.Register(NewMinRandomRounds(core))
	h.Register(NewMaxRandomRounds(core))
	h.Register(NewReroll(core))
	h.Register(NewStatus(core))

	h.Register(NewShortcut(core, "bhop", "Bhop"))
	h.Register(NewShortcut(core, "surf", "Surf"))
	h.Register(NewShortcut(core, "xray", "Xray"))

	if players != nil {
		h.Register(NewPlayers(players))
		h.Register(NewKick(players))
	}

	h.Register(NewHelp(h))
}
