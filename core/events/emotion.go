package events

const (
	// KindEmotion identifies emotional state packets.
	KindEmotion Kind = "packet.emotion"
)

type EmotionBehavior string

const (
	EmotionNeutral       EmotionBehavior = "neutral"
	EmotionDisgust       EmotionBehavior = "disgust"
	EmotionContempt      EmotionBehavior = "contempt"
	EmotionBelligerence  EmotionBehavior = "belligerence"
	EmotionDomineering   EmotionBehavior = "domineering"
	EmotionCriticism     EmotionBehavior = "criticism"
	EmotionAnger         EmotionBehavior = "anger"
	EmotionTension       EmotionBehavior = "tension"
	EmotionTenseHumor    EmotionBehavior = "tense_humor"
	EmotionDefensiveness EmotionBehavior = "defensiveness"
	EmotionWhining       EmotionBehavior = "whining"
	EmotionSadness       EmotionBehavior = "sadness"
	EmotionStonewalling  EmotionBehavior = "stonewalling"
	EmotionInterest      EmotionBehavior = "interest"
	EmotionValidation    EmotionBehavior = "validation"
	EmotionAffection     EmotionBehavior = "affection"
	EmotionHumor         EmotionBehavior = "humor"
	EmotionSurprise      EmotionBehavior = "surprise"
	EmotionJoy           EmotionBehavior = "joy"
)

type EmotionStrength string

const (
	EmotionStrengthUnspecified EmotionStrength = "unspecified"
	EmotionStrengthWeak        EmotionStrength = "weak"
	EmotionStrengthStrong      EmotionStrength = "strong"
	EmotionStrengthNormal      EmotionStrength = "normal"
)

// Emotion carries a character emotional state update. Emotion packets bypass
// the message queue and apply to the character directly.
type Emotion struct {
	Base
	Behavior EmotionBehavior
	Strength EmotionStrength
}

// NewEmotion creates an emotion packet.
func NewEmotion(packet PacketID, behavior EmotionBehavior, strength EmotionStrength, opts ...BaseOption) Emotion {
	return Emotion{Base: NewBase(KindEmotion, packet, opts...), Behavior: behavior, Strength: strength}
}
