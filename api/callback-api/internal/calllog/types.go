// Copyright (c) 2024-2026 CuraVoice
//
// Licensed under GPL-2.0.
package internal_calllog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CallRecord is the durable trace of a finished call session. The live
// session store is memory only; this table is what survives a restart for
// operator review. One row per terminal session, written when the session
// reaches advice_delivered or failed.
type CallRecord struct {
	Id            string    `json:"id" gorm:"column:id;type:varchar(36);primaryKey"`
	PhoneNumber   string    `json:"phoneNumber" gorm:"column:phone_number;type:varchar(50);not null;index"`
	Language      string    `json:"language" gorm:"column:language;type:varchar(10);not null;default:en"`
	HealthConcern string    `json:"healthConcern" gorm:"column:health_concern;type:text;not null;default:''"`
	Status        string    `json:"status" gorm:"column:status;type:varchar(30);not null"`
	CallSid       string    `json:"callSid" gorm:"column:call_sid;type:varchar(200);not null;default:''"`
	Provider      string    `json:"provider" gorm:"column:provider;type:varchar(50);not null;default:''"`
	CreatedDate   time.Time `json:"createdDate" gorm:"type:timestamp;not null;<-:create"`
	UpdatedDate   time.Time `json:"updatedDate" gorm:"type:timestamp;default:null"`
}

func (CallRecord) TableName() string {
	return "call_records"
}

func (cr *CallRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if cr.Id == "" {
		cr.Id = uuid.New().String()
	}
	if cr.CreatedDate.IsZero() {
		cr.CreatedDate = time.Now()
	}
	return nil
}
