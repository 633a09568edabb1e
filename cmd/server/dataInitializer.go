package main

import (
	"context"

	"gorm.io/gorm"
	"larpmanager.app/larp-gateway/app/infrastructure/database/dbschema"
)

type DataInitializer struct {
	db *gorm.DB
}

func NewDataInitializer(db *gorm.DB) *DataInitializer {
	return &DataInitializer{db: db}
}

func (d *DataInitializer) Install(ctx context.Context) error {
	if err := d.installDefaultFeatures(ctx); err != nil {
		return err
	}
	return d.installDefaultPermissions(ctx)
}

var defaultFeatures = []dbschema.Feature{
	{Slug: "character", Name: "Characters", Module: "writing"},
	{Slug: "faction", Name: "Factions", Module: "writing"},
	{Slug: "plot", Name: "Plots", Module: "writing"},
	{Slug: "speedlarp", Name: "Speed larps", Module: "writing"},
	{Slug: "prologue", Name: "Prologues", Module: "writing"},
	{Slug: "campaign", Name: "Campaigns", Module: "event"},
	{Slug: "membership", Name: "Membership", Module: "user", Overall: true},
}

type defaultPermission struct {
	Slug        string
	Name        string
	Scope       string
	FeatureSlug string
	Number      int
}

var defaultPermissions = []defaultPermission{
	{Slug: "characters", Name: "Characters", Scope: "event", FeatureSlug: "character", Number: 1},
	{Slug: "factions", Name: "Factions", Scope: "event", FeatureSlug: "faction", Number: 2},
	{Slug: "plots", Name: "Plots", Scope: "event", FeatureSlug: "plot", Number: 3},
	{Slug: "speedlarps", Name: "Speed larps", Scope: "event", FeatureSlug: "speedlarp", Number: 4},
	{Slug: "prologues", Name: "Prologues", Scope: "event", FeatureSlug: "prologue", Number: 5},
	{Slug: "membership", Name: "Membership", Scope: "assoc", FeatureSlug: "membership", Number: 1},
}

func (d *DataInitializer) installDefaultFeatures(ctx context.Context) error {
	for i := range defaultFeatures {
		row := defaultFeatures[i]
		err := d.db.WithContext(ctx).
			Where("slug = ?", row.Slug).
			FirstOrCreate(&row).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *DataInitializer) installDefaultPermissions(ctx context.Context) error {
	for _, p := range defaultPermissions {
		var feat dbschema.Feature
		err := d.db.WithContext(ctx).Where("slug = ?", p.FeatureSlug).First(&feat).Error
		if err != nil {
			return err
		}
		row := dbschema.Permission{
			Slug:      p.Slug,
			Name:      p.Name,
			Scope:     p.Scope,
			FeatureID: feat.ID,
			Number:    p.Number,
		}
		err = d.db.WithContext(ctx).
			Where("slug = ? AND scope = ?", p.Slug, p.Scope).
			FirstOrCreate(&row).Error
		if err != nil {
			return err
		}
	}
	return nil
}
