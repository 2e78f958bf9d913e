package review

import "time"

// Review is the customer's feedback attached to a paid booking.
type Review struct {
	rating      Rating
	comment     Comment
	submittedAt time.Time
}

func NewReview(ratingValue int, commentText string, now time.Time) (Review, error) {
	rating, err := NewRating(ratingValue)
	if err != nil {
		return Review{}, err
	}

	comment, err := NewComment(commentText)
	if err != nil {
		return Review{}, err
	}

	return Review{
		rating:      rating,
		comment:     comment,
		submittedAt: now,
	}, nil
}

func (r Review) Rating() Rating         { return r.rating }
func (r Review) Comment() Comment       { return r.comment }
func (r Review) SubmittedAt() time.Time { return r.submittedAt }
