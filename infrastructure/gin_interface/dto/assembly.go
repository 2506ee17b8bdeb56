package dto

import "highlight-reel-pipeline/domain"

type SegmentRequest struct {
	ID        int     `json:"id"`
	Title     string  `json:"title" binding:"required"`
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
	Voiceover string  `json:"voiceover"`
	AudioURI  string  `json:"audioS3Uri"`
}

type AssemblyRequest struct {
	VideoURI    string           `json:"videoS3Uri" binding:"required"`
	Segments    []SegmentRequest `json:"segments" binding:"required"`
	OutputURI   string           `json:"outputS3Uri" binding:"required"`
	AgencyLabel string           `json:"agencyLabel"`
	StreetLabel string           `json:"streetLabel"`
}

type AssemblyResponse struct {
	FinalVideoURI string  `json:"finalVideoS3Uri"`
	TotalDuration float64 `json:"totalDuration"`
	SegmentCount  int     `json:"segmentCount"`
}

func (r AssemblyRequest) ToJob() domain.AssemblyJob {
	segments := make([]domain.Segment, 0, len(r.Segments))
	for _, s := range r.Segments {
		segments = append(segments, domain.Segment{
			ID:                     s.ID,
			Title:                  s.Title,
			StartTime:              s.StartTime,
			EndTime:                s.EndTime,
			Voiceover:              s.Voiceover,
			NarrationAudioLocation: s.AudioURI,
		})
	}
	return domain.AssemblyJob{
		SourceVideoLocation: r.VideoURI,
		Segments:            segments,
		OutputLocation:      r.OutputURI,
		AgencyLabel:         r.AgencyLabel,
		StreetLabel:         r.StreetLabel,
	}
}
