package sqlinline

const QInsertEvent = `--sql 4b4b3f65-3ad5-429c-8236-bdb53c2739e0
insert into events(id, event_type, campaign_id, occurred_at, payload)
values ($1::uuid, $2::text, $3::int, $4::timestamptz, $5::jsonb);
`

const QListEvents = `--sql 8182bf21-173d-42dd-acfc-2e7bbc69bfdd
select id, event_type, campaign_id, occurred_at, payload
from events
order by seq desc
limit $1::int;
`
