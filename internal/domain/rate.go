package domain

// DurationBucket groups booking durations that share an hourly rate
type DurationBucket string

const (
	BucketShort    DurationBucket = "short"    // up to 1 hour
	BucketStandard DurationBucket = "standard" // over 1 hour
)

// BucketFor returns the bucket of a duration in hours
func BucketFor(hours float64) DurationBucket {
	if hours <= ShortBucketMaxHours {
		return BucketShort
	}
	return BucketStandard
}

// RateCardEntry is one cell of the rate table
type RateCardEntry struct {
	MemberType MemberType
	Bucket     DurationBucket
	HourlyRate float64
}

// FeeSettings current fee and tax configuration
type FeeSettings struct {
	PayNowFixedFee float64
	CardPercentage float64
	TaxPercentage  float64
}
