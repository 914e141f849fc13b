package app

// maxStepsPerTick bounds how many zero-delay continuations one Tick may chain.
const maxStepsPerTick = 8

// maxBidAttempts is the number of deals before the landlord is drawn at random.
const maxBidAttempts = 2

const (
	ReasonPlayerLeft = "player left the game"

	msgStarting     = "game starting"
	msgDealComplete = "cards dealt"
	msgRebid        = "no one bid, redealing"
)
