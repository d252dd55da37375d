package models

type Rating struct {
	LawyerID    int64  `json:"lawyerId"`
	RatingValue int    `json:"ratingValue"`
	Comment     string `json:"comment"`
}
