package permission

import "context"

// Prompter asks the user to grant a permission that has not been decided yet.
type Prompter interface {
	Prompt(ctx context.Context, kind Kind) (bool, error)
}

type PrompterFunc func(ctx context.Context, kind Kind) (bool, error)

func (f PrompterFunc) Prompt(ctx context.Context, kind Kind) (bool, error) {
	return f(ctx, kind)
}

type PromptRequest struct {
	Kind  Kind
	reply chan bool
}

// Answer delivers the user's decision. Only the first answer counts.
func (r PromptRequest) Answer(granted bool) {
	select {
	case r.reply <- granted:
	default:
	}
}

// ChanPrompter hands prompts to a UI loop over a channel and waits for the
// answer, so the request stays a user-paced round trip.
type ChanPrompter struct {
	requests chan PromptRequest
}

func NewChanPrompter() *ChanPrompter {
	return &ChanPrompter{requests: make(chan PromptRequest)}
}

func (p *ChanPrompter) Requests() <-chan PromptRequest {
	return p.requests
}

func (p *ChanPrompter) Prompt(ctx context.Context, kind Kind) (bool, error) {
	req := PromptRequest{Kind: kind, reply: make(chan bool, 1)}
	select {
	case p.requests <- req:
	case <-ctx.Done():
		return false, ErrCanceled
	}
	select {
	case granted := <-req.reply:
		return granted, nil
	case <-ctx.Done():
		return false, ErrCanceled
	}
}
