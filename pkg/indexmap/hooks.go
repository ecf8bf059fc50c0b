package indexmap

type HookEvent uint8

const (
	EventChange HookEvent = iota
	EventInit
	EventCacheUpdated
)

func (e HookEvent) String() string {
	switch e {
	case EventChange:
		return "change"
	case EventInit:
		return "init"
	case EventCacheUpdated:
		return "cacheUpdated"
	}
	return "unknown"
}

type HookID uint64

type localHook struct {
	id    HookID
	event HookEvent
	fn    func()
}

// localHooks delivers events synchronously, in registration order. A hook
// must not mutate the object it is registered on while being run.
type localHooks struct {
	nextID HookID
	hooks  []localHook
}

func (h *localHooks) AddLocalHook(event HookEvent, fn func()) HookID {
	h.nextID++
	h.hooks = append(h.hooks, localHook{id: h.nextID, event: event, fn: fn})
	return h.nextID
}

func (h *localHooks) RemoveLocalHook(id HookID) {
	for i, hook := range h.hooks {
		if hook.id == id {
			h.hooks = append(h.hooks[:i], h.hooks[i+1:]...)
			return
		}
	}
}

func (h *localHooks) RunLocalHooks(event HookEvent) {
	for _, hook := range h.hooks {
		if hook.event == event {
			hook.fn()
		}
	}
}
