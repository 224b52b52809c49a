package srs

import (
	"math"
	"time"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/histogram"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/linkgraph"
)

// Load balancing never moves intervals of this many days or fewer.
const noFuzzMaxOffset = 4

// linkDampeningBase is the link count at which links reach their full weight.
const linkDampeningBase = 64

// calculateInterval applies a review response to an interval and ease.
//
// Parameters:
//   - response: Easy, Good or Hard. Reset is handled by the caller.
//   - interval: the current interval in days
//   - ease: the current ease in percent
//   - delayDays: whole days the review happened after the due date
//   - settings: the scheduling settings
//
// Returns the raw (unclamped, unrounded) interval and the new ease.
//
// Algorithm behavior:
//   - Easy raises ease by 20 and applies the easy bonus. The full delay counts.
//   - Good keeps ease. Half of the delay counts.
//   - Hard lowers ease by 20 (never below 130) and shrinks the interval by the
//     lapse factor, keeping at least one day. A quarter of the delay counts.
func calculateInterval(
	response domain.ReviewResponse,
	interval float64,
	ease float64,
	delayDays int,
	settings *Settings,
) (float64, float64) {
	delay := float64(delayDays)

	switch response {
	case domain.ResponseEasy:
		ease += 20
		interval = ((interval + delay) * ease / 100) * settings.EasyBonus
	case domain.ResponseGood:
		interval = (interval + delay/2) * ease / 100
	case domain.ResponseHard:
		ease = math.Max(MinEase, ease-20)
		interval = math.Max(1, (interval+delay/4)*settings.LapseIntervalChange)
	}

	return interval, ease
}

// fuzzRadius returns how far load balancing may move an interval of the
// given number of days.
func fuzzRadius(days int) int {
	switch {
	case days < 7:
		return 1
	case days < 30:
		return max(2, int(math.Floor(float64(days)*0.15)))
	default:
		return max(4, int(math.Floor(float64(days)*0.05)))
	}
}

// balanceInterval rounds interval to whole days and moves it to a less used
// day offset when its own offset is already taken. The chosen offset is
// recorded in dueDates.
//
// Offsets of four days or fewer are never moved. For larger ones the search
// covers [offset-r, offset+r] where r comes from fuzzRadius, so the search is
// always bounded even when every offset in the window is in use.
func balanceInterval(interval float64, dueDates *histogram.ValueCountHistogram) float64 {
	offset := int(math.Round(interval))

	if dueDates.HasEntryForDays(offset) && offset > noFuzzMaxOffset {
		offset = dueDates.FindLeastUsedOffsetInRange(offset, fuzzRadius(offset))
	}
	dueDates.Increment(offset)

	return float64(offset)
}

// clampInterval caps interval at the maximum, keeps it non-negative and
// rounds it to one decimal place.
func clampInterval(interval float64, settings *Settings) float64 {
	interval = math.Min(interval, float64(settings.MaximumInterval))
	interval = math.Max(0, interval)
	return math.Round(interval*10) / 10
}

// calculateNextSchedule produces the schedule following a review.
//
// A nil current schedule means the item is new: it starts from interval 1
// with the given initial ease and any delay is ignored. Reset always yields
// interval 1 and the base ease, due tomorrow, and bypasses load balancing.
// Otherwise the due date is today plus the rounded interval.
func calculateNextSchedule(
	current *domain.ScheduleRecord,
	response domain.ReviewResponse,
	initialEase float64,
	dueDates *histogram.ValueCountHistogram,
	now time.Time,
	settings *Settings,
) domain.ScheduleRecord {
	today := domain.Today(now)

	if response == domain.ResponseReset {
		return domain.ScheduleRecord{
			DueDate:  domain.AddDays(today, 1),
			Interval: 1,
			Ease:     settings.BaseEase,
		}
	}

	interval := 1.0
	ease := initialEase
	delayDays := 0
	if current != nil {
		interval = current.Interval
		ease = current.Ease
		delayDays = current.WithReviewTime(now).DelayedBeforeReviewDays()
	}

	interval, ease = calculateInterval(response, interval, ease, delayDays, settings)

	if dueDates != nil && settings.LoadBalance {
		interval = balanceInterval(interval, dueDates)
	}
	interval = clampInterval(interval, settings)

	return domain.ScheduleRecord{
		DueDate:  domain.AddDays(today, int(math.Round(interval))),
		Interval: interval,
		Ease:     ease,
	}
}

// calculateLinkContribution returns the share of a new note's ease that comes
// from its links. It grows logarithmically with the number of links and
// reaches maxLinkFactor at 64 links.
func calculateLinkContribution(totalLinkCount int, maxLinkFactor float64) float64 {
	damp := math.Log(float64(totalLinkCount)+0.5) / math.Log(linkDampeningBase)
	return math.Max(0, maxLinkFactor*math.Min(1, damp))
}

// calculateInitialNoteEase blends the base ease with the rank-weighted ease of
// the notes linked to or from notePath. Partners without a known ease are
// ignored. When the note already has an average ease of its own, the blend is
// averaged with it. The result is rounded.
func calculateInitialNoteEase(
	graph *linkgraph.Graph,
	notePath string,
	eases *EaseList,
	settings *Settings,
) float64 {
	var (
		linkTotal      float64
		rankTotal      float64
		totalLinkCount int
	)

	if graph != nil && eases != nil {
		for _, partner := range graph.Related(notePath) {
			partnerEase, ok := eases.Average(partner.Path)
			if !ok {
				continue
			}
			count := float64(partner.Count)
			linkTotal += count * partner.Rank * partnerEase
			rankTotal += count * partner.Rank
			totalLinkCount += partner.Count
		}
	}

	contribution := calculateLinkContribution(totalLinkCount, settings.MaxLinkFactor)

	weighted := settings.BaseEase
	if totalLinkCount > 0 && rankTotal > 0 {
		weighted = linkTotal / rankTotal
	}
	ease := (1-contribution)*settings.BaseEase + contribution*weighted

	if eases != nil {
		if own, ok := eases.Average(notePath); ok {
			ease = (ease + own) / 2
		}
	}

	return math.Round(ease)
}

// calculateInitialCardEase returns the rounded average ease of the card's
// note, or the base ease when the note has none.
func calculateInitialCardEase(notePath string, eases *EaseList, settings *Settings) float64 {
	if eases != nil {
		if avg, ok := eases.Average(notePath); ok {
			return math.Round(avg)
		}
	}
	return settings.BaseEase
}
