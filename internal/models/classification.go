package models

// Classification is the referral-count-derived tier. It is recomputed lazily
// by leaderboard and rank queries, never by a background job.
type Classification string

const (
	ClassUser       Classification = "User"
	ClassPromoter   Classification = "Promoter"
	ClassInfluencer Classification = "Influencer"
	ClassAmbassador Classification = "Ambassador"
)

// Direct-referral counts required to enter each classification.
const (
	PromoterThreshold   = 1001
	InfluencerThreshold = 5001
	AmbassadorThreshold = 10001
)

// One-time awards paid on the transition into a classification.
var classificationAwards = map[Classification]int{
	ClassPromoter:   159000,
	ClassInfluencer: 500000,
	ClassAmbassador: 1200000,
}

// ClassifyReferrals maps a direct-referral count to a classification.
// The count is the length of the referrals list, not the recursive downline.
func ClassifyReferrals(count int) Classification {
	switch {
	case count >= AmbassadorThreshold:
		return ClassAmbassador
	case count >= InfluencerThreshold:
		return ClassInfluencer
	case count >= PromoterThreshold:
		return ClassPromoter
	default:
		return ClassUser
	}
}

// ClassificationAward returns the one-time award for entering c.
func ClassificationAward(c Classification) int {
	return classificationAwards[c]
}

func classificationRank(c Classification) int {
	switch c {
	case ClassPromoter:
		return 1
	case ClassInfluencer:
		return 2
	case ClassAmbassador:
		return 3
	default:
		return 0
	}
}

// PromoteIfEligible recomputes the user's classification from the current
// referral count and applies it when it outranks the stored one. The award is
// paid only for the tier entered, and only on that single upward transition;
// re-evaluation without a change awards nothing. Downgrades never happen.
// Returns the classification in effect and the points awarded.
func (u *User) PromoteIfEligible() (Classification, int) {
	computed := ClassifyReferrals(len(u.Referrals))
	if classificationRank(computed) <= classificationRank(u.Classification) {
		return u.Classification, 0
	}
	award := ClassificationAward(computed)
	u.Classification = computed
	u.AddEarnings(award)
	return computed, award
}
