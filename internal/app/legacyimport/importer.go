package legacyimport

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/agenda/internal/app/system/authz"
	"github.com/dalemusser/agenda/internal/app/system/format"
	"github.com/dalemusser/agenda/internal/app/system/htmlsanitize"
	"github.com/dalemusser/agenda/internal/app/system/normalize"
	"github.com/dalemusser/agenda/internal/app/system/status"
	"github.com/dalemusser/agenda/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Counts tallies one collection's outcome.
type Counts struct {
	Read     int
	Inserted int
	Updated  int
	Skipped  int
}

// Report summarises an import run.
type Report struct {
	Congregations Counts
	Users         Counts
	Ministries    Counts
	Events        Counts
	Collections   Counts
	// Unresolved counts references to documents missing from the source.
	Unresolved int
	Warnings   []string
}

func (r *Report) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Importer copies a Source into the agenda database.
type Importer struct {
	DB     *mongo.Database
	Source Source
	Log    *zap.Logger
	// DryRun reads and maps every document without writing.
	DryRun bool
}

type idMap map[string]primitive.ObjectID

// ref resolves a legacy id. Empty ids are not references; unknown ids are
// counted as unresolved.
func (im *Importer) ref(ids idMap, legacyID string, rep *Report) *primitive.ObjectID {
	if legacyID == "" {
		return nil
	}
	if id, ok := ids[legacyID]; ok {
		return &id
	}
	rep.Unresolved++
	return nil
}

func (im *Importer) refs(ids idMap, legacyIDs []string, rep *Report) []primitive.ObjectID {
	out := []primitive.ObjectID{}
	for _, l := range legacyIDs {
		if id := im.ref(ids, l, rep); id != nil {
			out = append(out, *id)
		}
	}
	return out
}

// Run imports congregations, users, ministries, events and collections in
// dependency order. User ministry memberships are written last because
// ministries reference users and users reference ministries.
func (im *Importer) Run(ctx context.Context) (Report, error) {
	var rep Report

	names := []string{SrcCongregations, SrcUsers, SrcMinistries, SrcEvents, SrcCollections}
	docs := make([][]Doc, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			d, err := im.Source.Documents(gctx, name)
			docs[i] = d
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return rep, err
	}
	congDocs, userDocs, minDocs, eventDocs, collDocs := docs[0], docs[1], docs[2], docs[3], docs[4]

	congIDs, err := im.importCongregations(ctx, congDocs, &rep)
	if err != nil {
		return rep, err
	}
	userIDs, err := im.importUsers(ctx, userDocs, congIDs, &rep)
	if err != nil {
		return rep, err
	}
	minIDs, err := im.importMinistries(ctx, minDocs, userIDs, &rep)
	if err != nil {
		return rep, err
	}
	if err := im.linkUserMinistries(ctx, userDocs, userIDs, minIDs, &rep); err != nil {
		return rep, err
	}
	eventIDs, err := im.importEvents(ctx, eventDocs, congIDs, minIDs, userIDs, &rep)
	if err != nil {
		return rep, err
	}
	if err := im.importCollections(ctx, collDocs, eventIDs, &rep); err != nil {
		return rep, err
	}

	im.Log.Info("legacy import finished",
		zap.Bool("dry_run", im.DryRun),
		zap.Int("congregations", rep.Congregations.Read),
		zap.Int("users", rep.Users.Read),
		zap.Int("ministries", rep.Ministries.Read),
		zap.Int("events", rep.Events.Read),
		zap.Int("collections", rep.Collections.Read),
		zap.Int("unresolved_refs", rep.Unresolved),
		zap.Int("warnings", len(rep.Warnings)))
	return rep, nil
}

// upsert writes doc into coll keyed by filter. created_at and a fresh _id
// are only set on insert.
func (im *Importer) upsert(ctx context.Context, coll string, filter, set bson.M, extra bson.M, c *Counts) (primitive.ObjectID, error) {
	if im.DryRun {
		c.Inserted++
		return primitive.NewObjectID(), nil
	}

	newID := primitive.NewObjectID()
	now := time.Now().UTC()
	set["updated_at"] = now
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"_id": newID, "created_at": now},
	}
	for k, v := range extra {
		update[k] = v
	}

	var prev struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.Before).
		SetProjection(bson.M{"_id": 1})
	err := im.DB.Collection(coll).FindOneAndUpdate(ctx, filter, update, opts).Decode(&prev)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		c.Inserted++
		return newID, nil
	case err != nil:
		return primitive.NilObjectID, fmt.Errorf("upsert %s: %w", coll, err)
	}
	c.Updated++
	return prev.ID, nil
}

func (im *Importer) importCongregations(ctx context.Context, docs []Doc, rep *Report) (idMap, error) {
	ids := idMap{}
	for _, d := range docs {
		rep.Congregations.Read++
		name := normalize.Name(str(d.Data, "nome"))
		if name == "" {
			rep.Congregations.Skipped++
			rep.warn("congregação %s sem nome", d.ID)
			continue
		}
		city := normalize.Name(str(d.Data, "cidade"))
		set := bson.M{
			"legacy_id": d.ID,
			"name":      name,
			"name_ci":   text.Fold(name),
			"address":   str(d.Data, "endereco"),
			"city":      city,
			"city_ci":   text.Fold(city),
			"contact":   str(d.Data, "contato"),
		}
		if lat, ok := num(d.Data, "latitude"); ok && lat >= -90 && lat <= 90 {
			set["latitude"] = lat
		}
		if lng, ok := num(d.Data, "longitude"); ok && lng >= -180 && lng <= 180 {
			set["longitude"] = lng
		}
		id, err := im.upsert(ctx, "congregacoes", bson.M{"legacy_id": d.ID}, set, nil, &rep.Congregations)
		if err != nil {
			return nil, err
		}
		ids[d.ID] = id
	}
	return ids, nil
}

// importUsers matches by legacy id or e-mail so accounts created before
// the import (such as the bootstrap admin) are merged, not duplicated.
// Legacy roles are added to existing ones; the Firestore document id is
// the Firebase UID.
func (im *Importer) importUsers(ctx context.Context, docs []Doc, congIDs idMap, rep *Report) (idMap, error) {
	ids := idMap{}
	for _, d := range docs {
		rep.Users.Read++
		email := normalize.Email(str(d.Data, "email"))
		if email == "" {
			rep.Users.Skipped++
			rep.warn("usuário %s sem e-mail", d.ID)
			continue
		}
		name := normalize.Name(str(d.Data, "nome"))
		if name == "" {
			name = email
		}
		roles := validRoles(strList(d.Data, "roles"))
		if len(roles) == 0 {
			roles = []string{string(authz.Membro)}
		}

		set := bson.M{
			"legacy_id":    d.ID,
			"full_name":    name,
			"full_name_ci": text.Fold(name),
			"email":        email,
			"firebase_uid": d.ID,
		}
		if phone := normalize.Phone(str(d.Data, "telefone")); phone != "" {
			set["phone"] = phone
		}
		if cong := im.ref(congIDs, str(d.Data, "congregacaoId"), rep); cong != nil {
			set["congregation_id"] = *cong
		}
		extra := bson.M{"$addToSet": bson.M{"roles": bson.M{"$each": roles}}}
		filter := bson.M{"$or": bson.A{bson.M{"legacy_id": d.ID}, bson.M{"email": email}}}

		id, err := im.upsertUser(ctx, filter, set, extra, &rep.Users)
		if err != nil {
			return nil, err
		}
		ids[d.ID] = id
	}
	return ids, nil
}

func (im *Importer) upsertUser(ctx context.Context, filter, set, extra bson.M, c *Counts) (primitive.ObjectID, error) {
	id, err := im.upsert(ctx, "users", filter, set, extra, c)
	if err != nil || im.DryRun {
		return id, err
	}
	// Account defaults for rows the import created.
	_, err = im.DB.Collection("users").UpdateOne(ctx,
		bson.M{"_id": id, "auth_method": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"auth_method": models.AuthFirebase, "status": models.UserActive, "ministry_ids": []primitive.ObjectID{}}})
	if err != nil {
		return id, fmt.Errorf("set account defaults: %w", err)
	}
	return id, nil
}

func (im *Importer) importMinistries(ctx context.Context, docs []Doc, userIDs idMap, rep *Report) (idMap, error) {
	ids := idMap{}
	for _, d := range docs {
		rep.Ministries.Read++
		name := normalize.Name(str(d.Data, "nome"))
		if name == "" {
			rep.Ministries.Skipped++
			rep.warn("ministério %s sem nome", d.ID)
			continue
		}
		set := bson.M{
			"legacy_id":   d.ID,
			"name":        name,
			"name_ci":     text.Fold(name),
			"description": htmlsanitize.StripTags(str(d.Data, "descricao")),
			"members":     im.refs(userIDs, strList(d.Data, "membros"), rep),
		}
		var extra bson.M
		if resp := im.ref(userIDs, str(d.Data, "responsavelUid"), rep); resp != nil {
			set["responsible_id"] = *resp
		} else {
			extra = bson.M{"$unset": bson.M{"responsible_id": ""}}
		}
		id, err := im.upsert(ctx, "ministerios", bson.M{"legacy_id": d.ID}, set, extra, &rep.Ministries)
		if err != nil {
			return nil, err
		}
		ids[d.ID] = id
	}
	return ids, nil
}

func (im *Importer) linkUserMinistries(ctx context.Context, docs []Doc, userIDs, minIDs idMap, rep *Report) error {
	for _, d := range docs {
		uid, ok := userIDs[d.ID]
		if !ok {
			continue
		}
		legacy := strList(d.Data, "ministerios")
		if len(legacy) == 0 || im.DryRun {
			continue
		}
		ministries := im.refs(minIDs, legacy, rep)
		if _, err := im.DB.Collection("users").UpdateOne(ctx, bson.M{"_id": uid},
			bson.M{"$addToSet": bson.M{"ministry_ids": bson.M{"$each": ministries}}}); err != nil {
			return fmt.Errorf("link ministries of %s: %w", d.ID, err)
		}
	}
	return nil
}

func (im *Importer) importEvents(ctx context.Context, docs []Doc, congIDs, minIDs, userIDs idMap, rep *Report) (idMap, error) {
	ids := idMap{}
	for _, d := range docs {
		rep.Events.Read++
		title := normalize.Name(str(d.Data, "titulo"))
		date, ok := timestamp(d.Data, "data")
		if title == "" || !ok {
			rep.Events.Skipped++
			rep.warn("evento %s sem título ou data", d.ID)
			continue
		}
		st := status.Status(normalize.Status(str(d.Data, "status")))
		if st == "" {
			st = status.Agendado
		}
		set := bson.M{
			"legacy_id":    d.ID,
			"title":        title,
			"title_ci":     text.Fold(title),
			"date":         calendarDate(date),
			"status":       string(st),
			"notes":        htmlsanitize.StripTags(str(d.Data, "observacoes")),
			"participants": im.refs(userIDs, strList(d.Data, "participantes"), rep),
		}
		if hora := str(d.Data, "hora"); hora != "" {
			set["time"] = hora
		}
		unset := bson.M{}
		if c := im.ref(congIDs, str(d.Data, "congregacaoId"), rep); c != nil {
			set["congregation_id"] = *c
		} else {
			unset["congregation_id"] = ""
		}
		if m := im.ref(minIDs, str(d.Data, "ministerioId"), rep); m != nil {
			set["ministry_id"] = *m
		} else {
			unset["ministry_id"] = ""
		}
		var extra bson.M
		if len(unset) > 0 {
			extra = bson.M{"$unset": unset}
		}
		id, err := im.upsert(ctx, "eventos", bson.M{"legacy_id": d.ID}, set, extra, &rep.Events)
		if err != nil {
			return nil, err
		}
		ids[d.ID] = id
	}
	return ids, nil
}

func (im *Importer) importCollections(ctx context.Context, docs []Doc, eventIDs idMap, rep *Report) error {
	for _, d := range docs {
		rep.Collections.Read++
		date, ok := timestamp(d.Data, "data")
		if !ok {
			rep.Collections.Skipped++
			rep.warn("coleta %s sem data", d.ID)
			continue
		}
		typ := strings.ToLower(str(d.Data, "tipo"))
		if typ == "" {
			typ = string(status.Outro)
		}
		expected, _ := num(d.Data, "expectedAmount")

		set := bson.M{
			"legacy_id":       d.ID,
			"type":            typ,
			"date":            calendarDate(date),
			"expected_amount": expected,
			"notes":           htmlsanitize.StripTags(str(d.Data, "observacoes")),
			"status":          models.CollectionPending,
		}
		unset := bson.M{}
		if ev := im.ref(eventIDs, str(d.Data, "eventoId"), rep); ev != nil {
			set["event_id"] = *ev
		} else {
			unset["event_id"] = ""
		}

		collected, hasCollected := num(d.Data, "collectedAmount")
		if str(d.Data, "status") == models.CollectionReceived && hasCollected {
			set["status"] = models.CollectionReceived
			set["collected_amount"] = collected
			set["receipt_notes"] = htmlsanitize.StripTags(str(d.Data, "observacoesRecebimento"))
			if at, ok := timestamp(d.Data, "dataRecebimento"); ok {
				set["received_at"] = at
			}
		} else {
			unset["collected_amount"] = ""
			unset["receipt_notes"] = ""
			unset["received_at"] = ""
		}

		var extra bson.M
		if len(unset) > 0 {
			extra = bson.M{"$unset": unset}
		}
		if _, err := im.upsert(ctx, "coletas", bson.M{"legacy_id": d.ID}, set, extra, &rep.Collections); err != nil {
			return err
		}
	}
	return nil
}

// calendarDate keeps the day the legacy client picked. It stored dates as
// UTC midnight of the chosen day.
func calendarDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, format.Location())
}

func validRoles(in []string) []string {
	var out []string
	for _, r := range normalize.Roles(in) {
		if authz.Role(r).Valid() {
			out = append(out, r)
		}
	}
	return out
}
